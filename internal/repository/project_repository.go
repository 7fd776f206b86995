package repository

import (
	"errors"
	"fmt"

	"github.com/thefankor/KanbanBoard/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateProject is returned when creating the project row fails inside the creation transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateColumns is returned when creating the default columns fails inside the creation transaction.
	ErrCreateColumns = errors.New("project repository: create default columns failed")
	// ErrCreateOwnerMember is returned when creating the owner membership fails inside the creation transaction.
	ErrCreateOwnerMember = errors.New("project repository: create owner membership failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithDefaults creates the project, its default columns, and the owner
// membership atomically. A failure at any step rolls back the whole creation,
// so an ownerless project can never be observed.
func (r *GormProjectRepository) CreateWithDefaults(project *models.Project, columns []models.Column, owner *models.ProjectMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		for i := range columns {
			columns[i].ProjectID = project.ID
		}
		if err := tx.Create(&columns).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateColumns, err)
		}

		owner.ProjectID = project.ID
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwnerMember, err)
		}

		return nil
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var columnIDs []uint64
		if err := tx.Model(&models.Column{}).
			Where("project_id = ?", id).
			Pluck("id", &columnIDs).Error; err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			if err := tx.Where("column_id IN ?", columnIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Column{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific project membership
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes the role on an existing membership
func (r *GormProjectRepository) UpdateMemberRole(projectID, userID uint64, role models.ProjectRole) error {
	return r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role).Error
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembersByUserID lists all projects a user is a member of
func (r *GormProjectRepository) ListMembersByUserID(userID uint64) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	if err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
