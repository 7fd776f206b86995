package repository

import (
	"github.com/thefankor/KanbanBoard/internal/models"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindByID finds a column by ID
func (r *GormColumnRepository) FindByID(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByProject lists a project's columns ordered by position
func (r *GormColumnRepository) ListByProject(projectID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("project_id = ?", projectID).
		Order("position").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// ListByProjectWithTasks lists a project's columns ordered by position, with tasks preloaded
func (r *GormColumnRepository) ListByProjectWithTasks(projectID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("project_id = ?", projectID).
		Order("position").
		Preload("Tasks").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update updates a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// Delete deletes a column and its tasks in a transaction
func (r *GormColumnRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Column{}, id).Error
	})
}
