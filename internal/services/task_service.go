package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService handles task business logic. Every operation is confined to
// the tasks of the acting user.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description string
}

// UpdateTaskInput represents input for updating a task. Nil fields are kept.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

// CreateTask creates a task owned by input.UserID with the default status
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apierrors.E(apierrors.KindValidation, ErrTitleRequired)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      constants.DefaultTaskStatus,
		UserID:      input.UserID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to create task: %w", err))
	}
	return task, nil
}

// ListTasks returns all tasks owned by userID
func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to list tasks: %w", err))
	}
	return tasks, nil
}

// GetTask returns the task with taskID if userID owns it
func (s *TaskService) GetTask(ctx context.Context, taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.E(apierrors.KindNotFound, ErrTaskNotFound)
		}
		return nil, apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to find task: %w", err))
	}
	return task, nil
}

// UpdateTask overwrites the provided fields of a task owned by userID
func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID uint64, input UpdateTaskInput) error {
	matched, err := s.taskRepo.UpdateOwned(ctx, taskID, userID, repository.TaskChanges{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		return apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to update task: %w", err))
	}
	if matched == 0 {
		return apierrors.E(apierrors.KindNotFound, ErrTaskNotFound)
	}
	return nil
}

// DeleteTask deletes a task owned by userID
func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID uint64) error {
	matched, err := s.taskRepo.DeleteOwned(ctx, taskID, userID)
	if err != nil {
		return apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to delete task: %w", err))
	}
	if matched == 0 {
		return apierrors.E(apierrors.KindNotFound, ErrTaskNotFound)
	}
	return nil
}
