package repository

import (
	"strings"

	"github.com/thefankor/KanbanBoard/internal/models"
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
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListFiltered retrieves a project's tasks matching the filter. The project
// scope is resolved through the tasks' columns; all filters are conjunctive.
func (r *GormTaskRepository) ListFiltered(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Where("columns.project_id = ?", filter.ProjectID)

	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ProducerID != nil {
		query = query.Where("tasks.producer_id = ?", *filter.ProducerID)
	}
	if filter.ColumnID != nil {
		query = query.Where("tasks.column_id = ?", *filter.ColumnID)
	}
	if filter.Deadline != nil {
		query = query.Where("tasks.deadline = ?", *filter.Deadline)
	}
	if filter.Title != "" {
		query = query.Where("LOWER(tasks.title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}

	if err := query.Order("tasks.created_at").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
