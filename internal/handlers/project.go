package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/dto"
	apierrors "github.com/thefankor/KanbanBoard/internal/errors"
	"github.com/thefankor/KanbanBoard/internal/middleware"
	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project with default columns, owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListMyProjects returns all projects the caller is a member of.
func (h *ProjectHandler) ListMyProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, m := range memberships {
		projects[i] = dto.ToProjectWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
	})
}

// GetProject returns project details with members.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	project, members, err := h.projectService.GetProjectWithMembers(member.ProjectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project, members, member.Role))
}

// UpdateProject updates a project's name and/or description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(member.ProjectID, userID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project with everything it owns.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	if err := h.projectService.DeleteProject(member.ProjectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// InviteMember adds a user to the project by email with role member.
func (h *ProjectHandler) InviteMember(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	type InviteMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invited, err := h.projectService.InviteMember(member.ProjectID, userID, req.Email)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberDTO(*invited))
}

// UpdateMemberRole changes a member's role (owner only; self excluded).
func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateRoleRequest struct {
		Role models.ProjectRole `json:"role" binding:"required"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateMemberRole(member.ProjectID, targetID, userID, req.Role)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": member.ProjectID,
		"user_id":    updated.UserID,
		"role":       updated.Role,
	})
}

// RemoveMember removes a member from the project.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.Forbidden(c, "Project access required")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(member.ProjectID, targetID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrRoleNotAssignable):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotChangeOwnRole),
		errors.Is(err, services.ErrCannotRemoveYourself),
		errors.Is(err, services.ErrRemoveMemberDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
