package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/dto"
	apierrors "github.com/promanager/promanager-api/internal/errors"
	"github.com/promanager/promanager-api/internal/middleware"
	"github.com/promanager/promanager-api/internal/models"
	"github.com/promanager/promanager-api/internal/policy"
	"github.com/promanager/promanager-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title         string                        `json:"title" binding:"required"`
		Priority      models.TaskPriority           `json:"priority" binding:"required"`
		AssignTo      *string                       `json:"assign_to_id"`
		AssignedEmail string                        `json:"assigned_email"`
		Checklist     []services.ChecklistItemInput `json:"checklist"`
		DueDate       *time.Time                    `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !validChecklist(req.Checklist) {
		apierrors.BadRequest(c, "Invalid checklist format")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Priority:      req.Priority,
		AssignTo:      req.AssignTo,
		AssignedEmail: req.AssignedEmail,
		Checklist:     req.Checklist,
		DueDate:       req.DueDate,
		CreatorID:     userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListTasks returns every task the caller created or is assigned to.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetAnalytics returns per-status and per-priority counts for the caller.
func (h *TaskHandler) GetAnalytics(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	result, err := h.taskService.Analytics(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnalyticsDTO{
		StatusCounts:   result.StatusCounts,
		PriorityCounts: result.PriorityCounts,
		DueDateCount:   result.DueDateCount,
	})
}

// GetTask returns a single task if the caller owns it.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, err := h.taskService.GetTask(c.Param("id"), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task the caller owns.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	// Parse raw JSON to tell absent fields apart from explicit nulls
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := buildUpdateInput(c, raw)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Param("id"), userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes a task the caller owns.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.DeleteTask(c.Param("id"), userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// MoveTask sets the task's workflow status.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type MoveTaskRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(c.Param("id"), userID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task moved successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListByStatus returns the caller's tasks with the given status.
func (h *TaskHandler) ListByStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListByStatus(userID, models.TaskStatus(c.Param("status")))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// FilterByDueDate returns the caller's tasks due within the named window.
func (h *TaskHandler) FilterByDueDate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.FilterByDueWindow(userID, c.Param("window"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ReassignBoard assigns every task the caller created to another user,
// resolved by email.
func (h *TaskHandler) ReassignBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ReassignRequest struct {
		AssignedEmail string `json:"assigned_email" binding:"required,email"`
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	count, err := h.taskService.ReassignAll(userID, req.AssignedEmail)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "All tasks have been assigned to " + req.AssignedEmail,
		"modified_count": count,
	})
}

// buildUpdateInput converts the raw update payload into an UpdateTaskInput.
// It answers the request itself on malformed fields and returns ok=false.
func buildUpdateInput(c *gin.Context, raw map[string]any) (services.UpdateTaskInput, bool) {
	var input services.UpdateTaskInput

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid title")
			return input, false
		}
		input.Title = &s
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid priority value")
			return input, false
		}
		p := models.TaskPriority(s)
		input.Priority = &p
	}
	if v, ok := raw["assign_to_id"]; ok {
		if v == nil {
			input.ClearAssignee = true
		} else if s, ok := v.(string); ok {
			input.AssignTo = &s
		} else {
			apierrors.BadRequest(c, "Invalid assignee")
			return input, false
		}
	}
	if v, ok := raw["assigned_email"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid assigned email")
			return input, false
		}
		input.AssignedEmail = &s
	}
	if v, ok := raw["due_date"]; ok {
		if v == nil {
			input.ClearDueDate = true
		} else if s, ok := v.(string); ok {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due date")
				return input, false
			}
			input.DueDate = &parsed
		} else {
			apierrors.BadRequest(c, "Invalid due date")
			return input, false
		}
	}
	if v, ok := raw["checklist"]; ok {
		data, err := json.Marshal(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid checklist format")
			return input, false
		}
		var items []services.ChecklistItemInput
		if err := json.Unmarshal(data, &items); err != nil || !validChecklist(items) {
			apierrors.BadRequest(c, "Invalid checklist format")
			return input, false
		}
		input.Checklist = &items
	}

	return input, true
}

// validChecklist requires every item to carry a description.
func validChecklist(items []services.ChecklistItemInput) bool {
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return false
		}
	}
	return true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, policy.ErrForbidden):
		apierrors.Forbidden(c, "You are not authorized for this task")
	case errors.Is(err, services.ErrAssigneeEmailNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDateFilter),
		errors.Is(err, services.ErrNothingToReassign):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("task handler error: %v", err)
		apierrors.InternalError(c, "")
	}
}
