package repository

import (
	"time"

	"github.com/promanager/promanager-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task along with its checklist items
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		if p == "Checklist" {
			query = query.Preload("Checklist", func(db *gorm.DB) *gorm.DB {
				return db.Order("checklist_items.position ASC")
			})
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindForUser retrieves every task the user created or is assigned to
func (r *GormTaskRepository) FindForUser(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.ownedScope(userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByStatusForUser retrieves the user's tasks with the given status
func (r *GormTaskRepository) FindByStatusForUser(userID string, status models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task
	err := r.ownedScope(userID).
		Where("tasks.status = ?", status).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindDueInWindowForUser retrieves the user's tasks due inside [from, to],
// plus the user's tasks without a due date
func (r *GormTaskRepository) FindDueInWindowForUser(userID string, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.ownedScope(userID).
		Where("(tasks.due_date >= ? AND tasks.due_date <= ?) OR tasks.due_date IS NULL", from, to).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task's own columns
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// ReplaceChecklist swaps the task's checklist for the given items
func (r *GormTaskRepository) ReplaceChecklist(taskID string, items []models.ChecklistItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].ID = 0
			items[i].TaskID = taskID
			items[i].Position = i
		}

		return tx.Create(&items).Error
	})
}

// Delete soft deletes a task and removes its checklist items
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// ReassignByCreator sets the assignee on every task the creator owns and
// returns the number of rows modified
func (r *GormTaskRepository) ReassignByCreator(creatorID, assigneeID, assignedEmail string) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("creator_id = ?", creatorID).
		Updates(map[string]interface{}{
			"assign_to_id":   assigneeID,
			"assigned_email": assignedEmail,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ownedScope scopes a task query to tasks the user created or is assigned to,
// with the ordered checklist preloaded
func (r *GormTaskRepository) ownedScope(userID string) *gorm.DB {
	return r.db.Model(&models.Task{}).
		Preload("Checklist", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_items.position ASC")
		}).
		Where("tasks.creator_id = ? OR tasks.assign_to_id = ?", userID, userID)
}
