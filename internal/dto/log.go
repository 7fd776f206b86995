package dto

import (
	"time"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/utils"
)

// ProjectLogDTO represents an audit log entry in API responses
type ProjectLogDTO struct {
	ID        uint64    `json:"id"`
	ProjectID *uint64   `json:"project_id"`
	TaskID    *uint64   `json:"task_id"`
	UserID    *uint64   `json:"user_id"`
	Type      string    `json:"type"`
	Info      string    `json:"info"`
	CreatedAt time.Time `json:"created_at"`
}

// LogListResponse represents a paginated list of audit log entries
type LogListResponse struct {
	Logs       []ProjectLogDTO          `json:"logs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToProjectLogDTO converts a ProjectLog model to ProjectLogDTO
func ToProjectLogDTO(entry models.ProjectLog) ProjectLogDTO {
	return ProjectLogDTO{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		TaskID:    entry.TaskID,
		UserID:    entry.UserID,
		Type:      entry.Type,
		Info:      entry.Info,
		CreatedAt: entry.CreatedAt,
	}
}

// ToLogListResponse converts log entries to a paginated response
func ToLogListResponse(logs []models.ProjectLog, params utils.PaginationParams, total int64) LogListResponse {
	items := make([]ProjectLogDTO, len(logs))
	for i, entry := range logs {
		items[i] = ToProjectLogDTO(entry)
	}

	return LogListResponse{
		Logs: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
