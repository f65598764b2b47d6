package dto

import (
	"time"

	"github.com/promanager/promanager-api/internal/models"
)

// ChecklistItemDTO represents a checklist entry in API responses
type ChecklistItemDTO struct {
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Priority      models.TaskPriority `json:"priority"`
	Status        models.TaskStatus   `json:"status"`
	DueDate       *time.Time          `json:"due_date"`
	CreatorID     string              `json:"creator_id"`
	AssignToID    *string             `json:"assign_to_id"`
	AssignedEmail string              `json:"assigned_email,omitempty"`
	IsPublic      bool                `json:"is_public"`
	Checklist     []ChecklistItemDTO  `json:"checklist"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SharedTaskDTO is the projection served on the public share link. It has no
// creator or assignee fields at all, so the projection cannot regress by a
// forgotten omission at serialization time.
type SharedTaskDTO struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Priority  models.TaskPriority `json:"priority"`
	Status    models.TaskStatus   `json:"status"`
	DueDate   *time.Time          `json:"due_date"`
	IsPublic  bool                `json:"is_public"`
	Checklist []ChecklistItemDTO  `json:"checklist"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// AnalyticsDTO aggregates the caller's tasks by status and priority
type AnalyticsDTO struct {
	StatusCounts   map[models.TaskStatus]int64   `json:"status_counts"`
	PriorityCounts map[models.TaskPriority]int64 `json:"priority_counts"`
	DueDateCount   int64                         `json:"due_date_count"`
}

// ToChecklistItemDTOs converts checklist models preserving their order
func ToChecklistItemDTOs(items []models.ChecklistItem) []ChecklistItemDTO {
	dtos := make([]ChecklistItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ChecklistItemDTO{
			Description: item.Description,
			IsCompleted: item.IsCompleted,
		}
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Priority:      task.Priority,
		Status:        task.Status,
		DueDate:       task.DueDate,
		CreatorID:     task.CreatorID,
		AssignToID:    task.AssignToID,
		AssignedEmail: task.AssignedEmail,
		IsPublic:      task.IsPublic,
		Checklist:     ToChecklistItemDTOs(task.Checklist),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToSharedTaskDTO converts a Task model to its public projection
func ToSharedTaskDTO(task models.Task) SharedTaskDTO {
	return SharedTaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    task.Status,
		DueDate:   task.DueDate,
		IsPublic:  task.IsPublic,
		Checklist: ToChecklistItemDTOs(task.Checklist),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
