package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectName   = errors.New("project name cannot be empty")
	ErrMemberNotFound       = errors.New("project member not found")
	ErrAlreadyProjectMember = errors.New("user is already a member of this project")
	ErrCannotChangeOwnRole  = errors.New("you cannot change your own role")
	ErrCannotRemoveYourself = errors.New("you cannot remove yourself from the project")
	ErrRemoveMemberDenied   = errors.New("admins cannot remove other admins or the owner")
	ErrRoleNotAssignable    = errors.New("role must be admin or member")
)

// ProjectService provides business logic for projects and their memberships.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	logService  *LogService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, logService *LogService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logService:  logService,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateProject creates a project, its four default columns at positions
// 0-3, and the owner membership for the creator, atomically.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
	}

	columns := make([]models.Column, len(models.DefaultColumnNames))
	for i, name := range models.DefaultColumnNames {
		columns[i] = models.Column{
			Name:     name,
			Position: i,
		}
	}

	owner := &models.ProjectMember{
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithDefaults(project, columns, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logService.Record(&project.ID, nil, &input.OwnerID, LogProjectCreated,
		fmt.Sprintf("project %q created", project.Name))

	return project, nil
}

// ListProjectsForUser returns the memberships (with projects) of a user.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.ProjectMember, error) {
	memberships, err := s.projectRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, nil
}

// GetProjectWithMembers returns a project and all of its members.
func (s *ProjectService) GetProjectWithMembers(projectID uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// UpdateProjectInput represents optional fields for a project update.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UpdateProject updates a project's name and/or description.
func (s *ProjectService) UpdateProject(projectID, actorID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	prevName := project.Name
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidProjectName
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logService.Record(&project.ID, nil, &actorID, LogProjectUpdated,
		fmt.Sprintf("project %q updated", prevName))

	return project, nil
}

// DeleteProject removes a project with its columns, tasks, and memberships.
func (s *ProjectService) DeleteProject(projectID, actorID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logService.Record(&projectID, nil, &actorID, LogProjectRemoved,
		fmt.Sprintf("project %q removed", project.Name))

	return nil
}

// InviteMember adds a user to the project by email with role member.
func (s *ProjectService) InviteMember(projectID, actorID uint64, email string) (*models.ProjectMember, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, user.ID); err == nil {
		return nil, ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to project: %w", err)
	}

	member.User = *user
	s.logService.Record(&projectID, nil, &actorID, LogMemberInvited,
		fmt.Sprintf("user %q invited as member", user.Username))

	return member, nil
}

// UpdateMemberRole changes a member's role. The acting owner may never
// change their own membership, and the owner role is never reassigned.
func (s *ProjectService) UpdateMemberRole(projectID, targetID, actorID uint64, newRole models.ProjectRole) (*models.ProjectMember, error) {
	if targetID == actorID {
		return nil, ErrCannotChangeOwnRole
	}
	if !newRole.IsAssignable() {
		return nil, ErrRoleNotAssignable
	}

	member, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find project member: %w", err)
	}

	prevRole := member.Role
	if err := s.projectRepo.UpdateMemberRole(projectID, targetID, newRole); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}
	member.Role = newRole

	s.logService.Record(&projectID, nil, &actorID, LogRoleUpdated,
		fmt.Sprintf("role of user %d changed from %s to %s", targetID, prevRole, newRole))

	return member, nil
}

// RemoveMember removes a member from the project. Owners may remove anyone
// but themselves; admins may remove only member-role users; self-removal
// is always rejected.
func (s *ProjectService) RemoveMember(projectID, targetID, actorID uint64) error {
	if targetID == actorID {
		return ErrCannotRemoveYourself
	}

	target, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find project member: %w", err)
	}

	actor, err := s.projectRepo.FindMember(projectID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find acting member: %w", err)
	}

	if actor.Role == models.RoleAdmin && target.Role != models.RoleMember {
		return ErrRemoveMemberDenied
	}

	if err := s.projectRepo.RemoveMember(projectID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.logService.Record(&projectID, nil, &actorID, LogMemberRemoved,
		fmt.Sprintf("user %d removed (was %s)", targetID, target.Role))

	return nil
}
