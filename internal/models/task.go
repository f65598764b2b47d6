package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo     TaskStatus = "TODO"
	TaskStatusBacklog  TaskStatus = "BACKLOG"
	TaskStatusProgress TaskStatus = "PROGRESS"
	TaskStatusDone     TaskStatus = "DONE"
)

type TaskPriority string

const (
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityModerate TaskPriority = "MODERATE"
	TaskPriorityLow      TaskPriority = "LOW"
)

type Task struct {
	ID            string          `gorm:"type:varchar(36);primarykey" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	Priority      TaskPriority    `gorm:"type:varchar(20);not null" json:"priority"`
	Status        TaskStatus      `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	DueDate       *time.Time      `json:"due_date"`
	CreatorID     string          `gorm:"type:varchar(36);not null" json:"creator_id"`
	AssignToID    *string         `gorm:"type:varchar(36)" json:"assign_to_id"`
	AssignedEmail string          `gorm:"type:varchar(255)" json:"assigned_email,omitempty"`
	IsPublic      bool            `gorm:"not null;default:false" json:"is_public"`
	Checklist     []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklist,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Creator  User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssignTo *User `gorm:"foreignKey:AssignToID" json:"assign_to,omitempty"`
}

// BeforeCreate assigns an opaque identifier before the row is inserted.
// The identifier doubles as the share-link capability, so it must not be
// guessable the way a sequential key would be.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
