package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/promanager/promanager-api/internal/models"
	"github.com/promanager/promanager-api/internal/policy"
	"github.com/promanager/promanager-api/internal/repository"
	"github.com/promanager/promanager-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired         = errors.New("title is required")
	ErrTitleEmpty            = errors.New("title cannot be empty")
	ErrInvalidPriority       = errors.New("invalid priority value")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrInvalidDateFilter     = errors.New("invalid date filter")
	ErrAssigneeEmailNotFound = errors.New("email is not found")
	ErrNothingToReassign     = errors.New("no tasks found to assign")
)

// TaskService handles task business logic. Authorization decisions are
// delegated to the policy package.
type TaskService struct {
	taskRepo     repository.TaskRepository
	userRepo     repository.UserRepository
	shareBaseURL string
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, shareBaseURL string) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
	}
}

// ChecklistItemInput represents one checklist entry in a create/update payload
type ChecklistItemInput struct {
	Description string `json:"description" binding:"required"`
	IsCompleted bool   `json:"is_completed"`
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Priority      models.TaskPriority
	AssignTo      *string
	AssignedEmail string
	Checklist     []ChecklistItemInput
	DueDate       *time.Time
	CreatorID     string
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; the checklist is replaced wholesale when provided.
type UpdateTaskInput struct {
	Title         *string
	Priority      *models.TaskPriority
	AssignTo      *string
	ClearAssignee bool
	AssignedEmail *string
	Checklist     *[]ChecklistItemInput
	DueDate       *time.Time
	ClearDueDate  bool
}

// CreateTask creates a new task owned by the caller. Any authenticated user
// may create; the caller becomes the immutable creator.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !policy.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:         input.Title,
		Priority:      input.Priority,
		Status:        models.TaskStatusTodo,
		DueDate:       input.DueDate,
		CreatorID:     input.CreatorID,
		AssignToID:    input.AssignTo,
		AssignedEmail: input.AssignedEmail,
		Checklist:     toChecklistItems(input.Checklist),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Checklist")
}

// ListTasks returns every task the user created or is assigned to
func (s *TaskService) ListTasks(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task if the caller owns it
func (s *TaskService) GetTask(taskID, callerID string) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(callerID, task, policy.OpRead); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update if the caller owns the task
func (s *TaskService) UpdateTask(taskID, callerID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(callerID, task, policy.OpUpdate); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Priority != nil {
		if !policy.ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssignToID = nil
		task.AssignedEmail = ""
	} else if input.AssignTo != nil {
		task.AssignToID = input.AssignTo
	}
	if input.AssignedEmail != nil {
		task.AssignedEmail = *input.AssignedEmail
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.Checklist != nil {
		if err := s.taskRepo.ReplaceChecklist(task.ID, toChecklistItems(*input.Checklist)); err != nil {
			return nil, fmt.Errorf("failed to update checklist: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "Checklist")
}

// DeleteTask deletes a task if the caller owns it
func (s *TaskService) DeleteTask(taskID, callerID string) error {
	task, err := s.loadTask(taskID)
	if err != nil {
		return err
	}

	if err := policy.Authorize(callerID, task, policy.OpDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// MoveTask sets the task's workflow status. The status value is validated
// before the task is even looked up, so an invalid value never mutates
// anything. Repeating a move to the same status succeeds and is a no-op.
func (s *TaskService) MoveTask(taskID, callerID string, status models.TaskStatus) (*models.Task, error) {
	if !policy.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(callerID, task, policy.OpMove); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return task, nil
}

// ListByStatus returns the caller's tasks with the given status
func (s *TaskService) ListByStatus(userID string, status models.TaskStatus) ([]models.Task, error) {
	if !policy.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.taskRepo.FindByStatusForUser(userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by status: %w", err)
	}
	return tasks, nil
}

// FilterByDueWindow returns the caller's tasks due inside the named window,
// plus those without a due date
func (s *TaskService) FilterByDueWindow(userID, window string) ([]models.Task, error) {
	from, to, err := utils.WindowRange(window, time.Now())
	if err != nil {
		return nil, ErrInvalidDateFilter
	}

	tasks, err := s.taskRepo.FindDueInWindowForUser(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to filter tasks: %w", err)
	}
	return tasks, nil
}

// ReassignAll assigns every task the caller created to the user with the
// given email and returns how many tasks changed. Touching zero tasks is an
// error, not a vacuous success. The update is a single statement but carries
// no cross-row rollback guarantees beyond what the store provides.
func (s *TaskService) ReassignAll(callerID, assignedEmail string) (int64, error) {
	target, err := s.userRepo.FindByEmail(assignedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAssigneeEmailNotFound
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}

	count, err := s.taskRepo.ReassignByCreator(callerID, target.ID, target.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign tasks: %w", err)
	}
	if count == 0 {
		return 0, ErrNothingToReassign
	}

	return count, nil
}

// AnalyticsResult aggregates the caller's tasks
type AnalyticsResult struct {
	StatusCounts   map[models.TaskStatus]int64
	PriorityCounts map[models.TaskPriority]int64
	DueDateCount   int64
}

// Analytics counts the caller's created-or-assigned tasks by status and
// priority, and counts how many carry a due date
func (s *TaskService) Analytics(userID string) (*AnalyticsResult, error) {
	tasks, err := s.taskRepo.FindForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	result := &AnalyticsResult{
		StatusCounts:   make(map[models.TaskStatus]int64),
		PriorityCounts: make(map[models.TaskPriority]int64),
	}

	for _, task := range tasks {
		result.StatusCounts[task.Status]++
		result.PriorityCounts[task.Priority]++
		if task.DueDate != nil {
			result.DueDateCount++
		}
	}

	return result, nil
}

// ShareLink returns the public URL for a task the caller owns. The link is
// the task identifier under a configured base; whoever holds it can read the
// shared projection indefinitely.
func (s *TaskService) ShareLink(taskID, callerID string) (string, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return "", err
	}

	if err := policy.Authorize(callerID, task, policy.OpShare); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/shared/%s", s.shareBaseURL, task.ID), nil
}

// ViewShared loads a task for the unauthenticated share view. Callers must
// serve it through the shared projection only.
func (s *TaskService) ViewShared(taskID string) (*models.Task, error) {
	return s.loadTask(taskID)
}

// loadTask fetches a task with its checklist, normalizing the not-found case
func (s *TaskService) loadTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Checklist")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func toChecklistItems(inputs []ChecklistItemInput) []models.ChecklistItem {
	items := make([]models.ChecklistItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.ChecklistItem{
			Description: in.Description,
			IsCompleted: in.IsCompleted,
			Position:    i,
		}
	}
	return items
}
