package services

import (
	"log"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"github.com/thefankor/KanbanBoard/internal/utils"
)

// Audit entry type labels
const (
	LogProjectCreated = "project created"
	LogProjectUpdated = "project updated"
	LogProjectRemoved = "project removed"
	LogMemberInvited  = "member invited"
	LogMemberRemoved  = "member removed"
	LogRoleUpdated    = "role updated"
	LogColumnCreated  = "column created"
	LogColumnUpdated  = "column updated"
	LogColumnRemoved  = "column removed"
	LogTaskCreated    = "task created"
	LogTaskUpdated    = "task updated"
	LogTaskMoved      = "task moved"
	LogTaskRemoved    = "task removed"
)

// LogService appends audit entries for project and task mutations.
type LogService struct {
	logRepo repository.LogRepository
}

// NewLogService creates a new LogService.
func NewLogService(logRepo repository.LogRepository) *LogService {
	return &LogService{
		logRepo: logRepo,
	}
}

// Record appends an audit entry. A storage failure is logged and swallowed:
// the log must never fail or roll back the mutation it describes.
func (s *LogService) Record(projectID, taskID, userID *uint64, entryType, info string) {
	entry := &models.ProjectLog{
		ProjectID: projectID,
		TaskID:    taskID,
		UserID:    userID,
		Type:      entryType,
		Info:      info,
	}

	if err := s.logRepo.Create(entry); err != nil {
		log.Printf("audit log write failed (type=%q): %v", entryType, err)
	}
}

// ListByProject lists a project's audit entries, newest first.
func (s *LogService) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.ProjectLog, int64, error) {
	return s.logRepo.ListByProject(projectID, params)
}

// ListByTask lists a task's audit entries, newest first.
func (s *LogService) ListByTask(taskID uint64) ([]models.ProjectLog, error) {
	return s.logRepo.ListByTask(taskID)
}
