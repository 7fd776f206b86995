package repository

import (
	"time"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithDefaults creates a project, its default columns, and the
	// owner membership within a single transaction.
	CreateWithDefaults(project *models.Project, columns []models.Column, owner *models.ProjectMember) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all related data
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// FindMember finds a specific project membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// UpdateMemberRole changes the role on an existing membership
	UpdateMemberRole(projectID, userID uint64, role models.ProjectRole) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// ListMembersByUserID lists all projects a user is a member of
	ListMembersByUserID(userID uint64) ([]models.ProjectMember, error)
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *models.Column) error

	// FindByID finds a column by ID
	FindByID(id uint64) (*models.Column, error)

	// ListByProject lists a project's columns ordered by position
	ListByProject(projectID uint64) ([]models.Column, error)

	// ListByProjectWithTasks lists a project's columns ordered by position,
	// with tasks preloaded
	ListByProjectWithTasks(projectID uint64) ([]models.Column, error)

	// Update updates a column
	Update(column *models.Column) error

	// Delete deletes a column and cascades to its tasks
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing a project's tasks.
// All set filters compose conjunctively.
type TaskFilter struct {
	ProjectID  uint64
	AssigneeID *uint64
	ProducerID *uint64
	ColumnID   *uint64
	Deadline   *time.Time
	// Title is matched as a case-insensitive substring.
	Title string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListFiltered retrieves a project's tasks matching the filter
	ListFiltered(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// LogRepository defines the interface for the append-only audit log
type LogRepository interface {
	// Create appends a log entry
	Create(entry *models.ProjectLog) error

	// ListByProject lists entries referencing a project, newest first
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.ProjectLog, int64, error)

	// ListByTask lists entries referencing a task, newest first
	ListByTask(taskID uint64) ([]models.ProjectLog, error)
}
