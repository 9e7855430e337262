package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks owned by the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		respondTaskError(c, "Failed to fetch tasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one task owned by the current user
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := currentUserAndTask(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondTaskError(c, "Failed to fetch task", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, "Task creation failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: "Task created successfully",
		Task:    dto.ToTaskDTO(*task),
	})
}

// UpdateTask overwrites the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := currentUserAndTask(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	// An empty body is a valid update that changes nothing.
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apierrors.E(apierrors.KindValidation, err))
		apierrors.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, "Task update failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task updated successfully"})
}

// DeleteTask deletes a task owned by the current user
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := currentUserAndTask(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondTaskError(c, "Task deletion failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

func currentUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Missing token")
		return 0, false
	}
	return userID, true
}

func currentUserAndTask(c *gin.Context) (uint64, uint64, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return 0, 0, false
	}
	return userID, taskID, true
}

func respondTaskError(c *gin.Context, title string, err error) {
	if apierrors.KindOf(err) == apierrors.KindNotFound {
		_ = c.Error(err)
		apierrors.NotFound(c, "Task not found")
		return
	}
	apierrors.Respond(c, title, err)
}
