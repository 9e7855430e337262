package repository

import (
	"context"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskRepository defines the interface for task data access.
// Every method except Create is scoped to the owning user.
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// ListByUser returns all tasks owned by userID in store order
	ListByUser(ctx context.Context, userID uint64) ([]models.Task, error)

	// FindOwned finds the task with taskID owned by userID
	FindOwned(ctx context.Context, taskID, userID uint64) (*models.Task, error)

	// UpdateOwned applies changes to the task with taskID owned by userID
	// and reports how many rows matched
	UpdateOwned(ctx context.Context, taskID, userID uint64, changes TaskChanges) (int64, error)

	// DeleteOwned soft deletes the task with taskID owned by userID
	// and reports how many rows matched
	DeleteOwned(ctx context.Context, taskID, userID uint64) (int64, error)
}

// TaskChanges holds the task fields to overwrite. Nil fields are left as is.
type TaskChanges struct {
	Title       *string
	Description *string
	Status      *string
}

// Columns converts the changes into a column map for a partial update.
func (c TaskChanges) Columns() map[string]any {
	columns := make(map[string]any, 3)
	if c.Title != nil {
		columns["title"] = *c.Title
	}
	if c.Description != nil {
		columns["description"] = *c.Description
	}
	if c.Status != nil {
		columns["status"] = *c.Status
	}
	return columns
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
