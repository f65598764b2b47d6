package repository

import (
	"time"

	"github.com/promanager/promanager-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task along with its checklist items
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Task, error)

	// FindForUser retrieves every task the user created or is assigned to
	FindForUser(userID string) ([]models.Task, error)

	// FindByStatusForUser retrieves the user's tasks with the given status
	FindByStatusForUser(userID string, status models.TaskStatus) ([]models.Task, error)

	// FindDueInWindowForUser retrieves the user's tasks due inside [from, to],
	// plus the user's tasks without a due date
	FindDueInWindowForUser(userID string, from, to time.Time) ([]models.Task, error)

	// Update persists changes to a task's own columns
	Update(task *models.Task) error

	// ReplaceChecklist swaps the task's checklist for the given items
	ReplaceChecklist(taskID string, items []models.ChecklistItem) error

	// Delete soft deletes a task and removes its checklist items
	Delete(id string) error

	// ReassignByCreator sets the assignee on every task the creator owns and
	// returns the number of rows modified
	ReassignByCreator(creatorID, assigneeID, assignedEmail string) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}
