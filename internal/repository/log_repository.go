package repository

import (
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/utils"
	"gorm.io/gorm"
)

// GormLogRepository is a GORM implementation of LogRepository
type GormLogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *gorm.DB) LogRepository {
	return &GormLogRepository{db: db}
}

// Create appends a log entry
func (r *GormLogRepository) Create(entry *models.ProjectLog) error {
	return r.db.Create(entry).Error
}

// ListByProject lists entries referencing a project, newest first
func (r *GormLogRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.ProjectLog, int64, error) {
	query := r.db.Model(&models.ProjectLog{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ProjectLog
	if err := query.Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListByTask lists entries referencing a task, newest first
func (r *GormLogRepository) ListByTask(taskID uint64) ([]models.ProjectLog, error) {
	var logs []models.ProjectLog
	if err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
