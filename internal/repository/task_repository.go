package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByUser returns every task owned by userID
func (r *GormTaskRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOwned finds a task by ID within the owner's tasks
func (r *GormTaskRepository) FindOwned(ctx context.Context, taskID, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(database.OwnedTask(taskID, userID)).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateOwned performs a conditional partial update
func (r *GormTaskRepository) UpdateOwned(ctx context.Context, taskID, userID uint64, changes TaskChanges) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Scopes(database.OwnedTask(taskID, userID))

	columns := changes.Columns()
	if len(columns) == 0 {
		// Nothing to write; report whether the row exists.
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return 0, err
		}
		return count, nil
	}

	result := query.Updates(columns)
	return result.RowsAffected, result.Error
}

// DeleteOwned performs a conditional soft delete
func (r *GormTaskRepository) DeleteOwned(ctx context.Context, taskID, userID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(database.OwnedTask(taskID, userID)).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
