// Package policy holds the authorization and task-lifecycle rules. Every
// function here is a pure decision over already-loaded data; persistence and
// identity resolution happen in the callers.
package policy

import (
	"errors"

	"github.com/promanager/promanager-api/internal/models"
)

var (
	// ErrTaskNotFound is returned when the task to authorize does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden is returned when the caller is neither the creator nor the assignee.
	ErrForbidden = errors.New("caller is not authorized for this task")
)

// Operation identifies what the caller intends to do with a task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpMove   Operation = "move"
	OpShare  Operation = "share"
)

// CanAccess reports whether the caller owns the task: the caller is the
// creator or the current assignee. An unset assignee never matches.
func CanAccess(callerID string, task *models.Task) bool {
	if task == nil {
		return false
	}
	if task.CreatorID == callerID {
		return true
	}
	return task.AssignToID != nil && *task.AssignToID == callerID
}

// Authorize decides whether the caller may perform op on the task. A missing
// task is reported before ownership is considered, so the caller can
// distinguish not-found from forbidden. All listed operations share the same
// ownership rule; creating a task needs no authorization because the caller
// becomes the creator.
func Authorize(callerID string, task *models.Task, op Operation) error {
	if task == nil {
		return ErrTaskNotFound
	}
	if !CanAccess(callerID, task) {
		return ErrForbidden
	}
	return nil
}

// ValidStatus reports whether s is one of the four workflow statuses. The
// lifecycle is an unrestricted graph: any valid status may follow any other,
// so membership is the only check.
func ValidStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusTodo, models.TaskStatusBacklog, models.TaskStatusProgress, models.TaskStatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the three priority levels.
func ValidPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityHigh, models.TaskPriorityModerate, models.TaskPriorityLow:
		return true
	}
	return false
}
