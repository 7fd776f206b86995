package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/dto"
	apierrors "github.com/thefankor/KanbanBoard/internal/errors"
	"github.com/thefankor/KanbanBoard/internal/middleware"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"github.com/thefankor/KanbanBoard/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in a column. The admin-or-owner check on the
// column's project happens in the service, because the target column is
// carried in the body rather than the URL.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		ColumnID    uint64     `json:"column_id" binding:"required"`
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		AssigneeID  *uint64    `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		AssigneeID:  req.AssigneeID,
		ProducerID:  userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task with related data.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.Forbidden(c, "Task access required")
		return
	}

	loaded, err := h.taskService.GetTask(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*loaded))
}

// GetBoard returns the project's columns with their tasks.
func (h *TaskHandler) GetBoard(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	columns, err := h.taskService.GetBoard(member.ProjectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(member.ProjectID, columns))
}

// ListTasks returns the project's tasks matching the query filters.
// Equality filters (assignee_id, producer_id, column_id, deadline) and the
// case-insensitive title substring filter compose conjunctively.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	filter := repository.TaskFilter{
		ProjectID: member.ProjectID,
		Title:     c.Query("title"),
	}

	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		filter.AssigneeID = &id
	}
	if v := c.Query("producer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid producer_id")
			return
		}
		filter.ProducerID = &id
	}
	if v := c.Query("column_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid column_id")
			return
		}
		filter.ColumnID = &id
	}
	if v := c.Query("deadline"); v != "" {
		deadline, err := time.Parse("2006-01-02", v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid deadline, expected YYYY-MM-DD")
			return
		}
		filter.Deadline = &deadline
	}

	tasks, err := h.taskService.ListTasks(filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	taskDTOs := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		taskDTOs[i] = dto.ToTaskDTO(task)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": taskDTOs,
	})
}

// UpdateTask updates a task's title, description, deadline, or assignee.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.Forbidden(c, "Task access required")
		return
	}

	type UpdateTaskRequest struct {
		Title         *string    `json:"title"`
		Description   *string    `json:"description"`
		Deadline      *time.Time `json:"deadline"`
		ClearDeadline bool       `json:"clear_deadline"`
		AssigneeID    *uint64    `json:"assignee_id"`
		ClearAssignee bool       `json:"clear_assignee"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, userID, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// MoveTask moves a task to a different column of its project.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.Forbidden(c, "Task access required")
		return
	}

	type MoveTaskRequest struct {
		ColumnID uint64 `json:"column_id" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	moved, err := h.taskService.MoveTask(task.ID, req.ColumnID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*moved))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.Forbidden(c, "Task access required")
		return
	}

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrAssigneeNotMember),
		errors.Is(err, services.ErrColumnWrongProject):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrNotProjectMember):
		// membership absence answers 404 to avoid leaking existence
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
