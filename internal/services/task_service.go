package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrNotProjectMember     = errors.New("user is not a member of the project")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrAssigneeNotMember    = errors.New("assignee must be a member of the project")
	ErrColumnWrongProject   = errors.New("target column belongs to a different project")
)

// TaskService provides business logic for tasks.
type TaskService struct {
	taskRepo    repository.TaskRepository
	columnRepo  repository.ColumnRepository
	projectRepo repository.ProjectRepository
	logService  *LogService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, columnRepo repository.ColumnRepository, projectRepo repository.ProjectRepository, logService *LogService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		columnRepo:  columnRepo,
		projectRepo: projectRepo,
		logService:  logService,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ColumnID    uint64
	Title       string
	Description string
	Deadline    *time.Time
	AssigneeID  *uint64
	ProducerID  uint64
}

// CreateTask creates a task in a column. The producer must hold an admin or
// owner role on the column's project; the check runs here because the target
// column arrives in the request body, outside the URL middleware chain.
// Membership is resolved fresh, never cached.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	column, err := s.columnRepo.FindByID(input.ColumnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	member, err := s.projectRepo.FindMember(column.ProjectID, input.ProducerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 404 rather than 403: membership absence must not confirm
			// the project's existence.
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}
	if !member.Role.CanManage() {
		return nil, ErrTaskPermissionDenied
	}

	if input.AssigneeID != nil {
		if err := s.ensureProjectMember(column.ProjectID, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ColumnID:    input.ColumnID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    truncateToDate(input.Deadline),
		AssigneeID:  input.AssigneeID,
		ProducerID:  input.ProducerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logService.Record(&column.ProjectID, &task.ID, &input.ProducerID, LogTaskCreated,
		fmt.Sprintf("task %q created in column %q", task.Title, column.Name))

	return task, nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Column", "Assignee", "Producer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// GetBoard returns a project's columns in display order, tasks included.
func (s *TaskService) GetBoard(projectID uint64) ([]models.Column, error) {
	columns, err := s.columnRepo.ListByProjectWithTasks(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return columns, nil
}

// ListTasks retrieves a project's tasks matching the filter.
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, error) {
	filter.Deadline = truncateToDate(filter.Deadline)

	tasks, err := s.taskRepo.ListFiltered(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskInput represents optional fields for a task update. The producer
// is immutable and deliberately absent.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Deadline      *time.Time
	ClearDeadline bool
	AssigneeID    *uint64
	ClearAssignee bool
}

// UpdateTask updates a task's title, description, deadline, or assignee.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	column, err := s.columnRepo.FindByID(task.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = truncateToDate(input.Deadline)
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.ensureProjectMember(column.ProjectID, *input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logService.Record(&column.ProjectID, &task.ID, &actorID, LogTaskUpdated,
		fmt.Sprintf("task %q updated", task.Title))

	return task, nil
}

// MoveTask moves a task to a different column of the same project. Only
// column_id changes; tasks carry no order within a column.
func (s *TaskService) MoveTask(taskID, targetColumnID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	current, err := s.columnRepo.FindByID(task.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	target, err := s.columnRepo.FindByID(targetColumnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find target column: %w", err)
	}
	if target.ProjectID != current.ProjectID {
		return nil, ErrColumnWrongProject
	}

	task.ColumnID = targetColumnID
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	s.logService.Record(&current.ProjectID, &task.ID, &actorID, LogTaskMoved,
		fmt.Sprintf("task %q moved from %q to %q", task.Title, current.Name, target.Name))

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	column, err := s.columnRepo.FindByID(task.ColumnID)
	if err != nil {
		return fmt.Errorf("failed to find column: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logService.Record(&column.ProjectID, &taskID, &actorID, LogTaskRemoved,
		fmt.Sprintf("task %q removed from column %q", task.Title, column.Name))

	return nil
}

func (s *TaskService) ensureProjectMember(projectID, userID uint64) error {
	if _, err := s.projectRepo.FindMember(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotMember
		}
		return fmt.Errorf("failed to verify assignee membership: %w", err)
	}
	return nil
}

// truncateToDate drops the time component; deadlines are calendar dates.
func truncateToDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
