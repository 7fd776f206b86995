package dto

import (
	"time"

	"github.com/thefankor/KanbanBoard/internal/models"
)

// ColumnDTO represents a column in API responses
type ColumnDTO struct {
	ID        uint64 `json:"id"`
	ProjectID uint64 `json:"project_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	ColumnID    uint64     `json:"column_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *uint64    `json:"assignee_id"`
	ProducerID  uint64     `json:"producer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Assignee    *UserDTO   `json:"assignee,omitempty"`
	Producer    *UserDTO   `json:"producer,omitempty"`
}

// BoardColumnDTO represents a column with its tasks in board responses
type BoardColumnDTO struct {
	ColumnDTO
	Tasks []TaskDTO `json:"tasks"`
}

// BoardDTO represents a project's full board
type BoardDTO struct {
	ProjectID uint64           `json:"project_id"`
	Columns   []BoardColumnDTO `json:"columns"`
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	return ColumnDTO{
		ID:        column.ID,
		ProjectID: column.ProjectID,
		Name:      column.Name,
		Position:  column.Position,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		ColumnID:    task.ColumnID,
		Title:       task.Title,
		Description: task.Description,
		Deadline:    task.Deadline,
		AssigneeID:  task.AssigneeID,
		ProducerID:  task.ProducerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	// Include producer if preloaded
	if task.Producer.ID != 0 {
		producer := ToUserDTO(task.Producer)
		dto.Producer = &producer
	}

	return dto
}

// ToBoardDTO converts a project's columns with tasks to BoardDTO
func ToBoardDTO(projectID uint64, columns []models.Column) BoardDTO {
	columnDTOs := make([]BoardColumnDTO, len(columns))
	for i, column := range columns {
		tasks := make([]TaskDTO, len(column.Tasks))
		for j, task := range column.Tasks {
			tasks[j] = ToTaskDTO(task)
		}
		columnDTOs[i] = BoardColumnDTO{
			ColumnDTO: ToColumnDTO(column),
			Tasks:     tasks,
		}
	}

	return BoardDTO{
		ProjectID: projectID,
		Columns:   columnDTOs,
	}
}
