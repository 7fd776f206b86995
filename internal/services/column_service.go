package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrColumnNotFound    = errors.New("column not found")
	ErrInvalidColumnName = errors.New("column name cannot be empty")
)

// ColumnService provides business logic for board columns.
type ColumnService struct {
	columnRepo repository.ColumnRepository
	logService *LogService
}

// NewColumnService creates a new ColumnService.
func NewColumnService(columnRepo repository.ColumnRepository, logService *LogService) *ColumnService {
	return &ColumnService{
		columnRepo: columnRepo,
		logService: logService,
	}
}

// CreateColumnInput represents parameters to create a column.
type CreateColumnInput struct {
	ProjectID uint64
	Name      string
	Position  int
	ActorID   uint64
}

// CreateColumn adds a column to a project.
func (s *ColumnService) CreateColumn(input CreateColumnInput) (*models.Column, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidColumnName
	}

	column := &models.Column{
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Position:  input.Position,
	}

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	s.logService.Record(&column.ProjectID, nil, &input.ActorID, LogColumnCreated,
		fmt.Sprintf("column %q created at position %d", column.Name, column.Position))

	return column, nil
}

// ListColumns lists a project's columns ordered by position.
func (s *ColumnService) ListColumns(projectID uint64) ([]models.Column, error) {
	columns, err := s.columnRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// UpdateColumnInput represents optional fields for a column update.
type UpdateColumnInput struct {
	Name     *string
	Position *int
}

// UpdateColumn updates a column's name and/or position.
func (s *ColumnService) UpdateColumn(columnID, actorID uint64, input UpdateColumnInput) (*models.Column, error) {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	prev := fmt.Sprintf("%q at position %d", column.Name, column.Position)
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidColumnName
		}
		column.Name = *input.Name
	}
	if input.Position != nil {
		column.Position = *input.Position
	}

	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	s.logService.Record(&column.ProjectID, nil, &actorID, LogColumnUpdated,
		fmt.Sprintf("column %s changed to %q at position %d", prev, column.Name, column.Position))

	return column, nil
}

// DeleteColumn removes a column together with its tasks.
func (s *ColumnService) DeleteColumn(columnID, actorID uint64) error {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to find column: %w", err)
	}

	if err := s.columnRepo.Delete(columnID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	s.logService.Record(&column.ProjectID, nil, &actorID, LogColumnRemoved,
		fmt.Sprintf("column %q removed with its tasks", column.Name))

	return nil
}
