package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/constants"
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/models"
)

// RequireProjectAccess checks that the current user is a member of the
// project named by the :project_id parameter. Both a missing project and a
// missing membership answer 404, so a non-member cannot probe whether a
// project exists. The membership is read fresh on every request; a role
// change takes effect on the next one.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("project_id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid project ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		var member models.ProjectMember
		err = database.GetDB().Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
		if err != nil {
			// 404 instead of 403 to avoid leaking project existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyProjectMember, member)
		c.Next()
	}
}

// RequireProjectAdmin checks that the membership loaded by
// RequireProjectAccess carries an admin or owner role.
func RequireProjectAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetProjectMember(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Project access required",
			})
			c.Abort()
			return
		}

		if !member.Role.CanManage() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only project admins or the owner can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireProjectOwner checks that the membership loaded by
// RequireProjectAccess carries the owner role.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetProjectMember(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Project access required",
			})
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the project owner can perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProjectMember retrieves the membership stored by RequireProjectAccess.
func GetProjectMember(c *gin.Context) (models.ProjectMember, bool) {
	memberInterface, exists := c.Get(constants.ContextKeyProjectMember)
	if !exists {
		return models.ProjectMember{}, false
	}

	member, ok := memberInterface.(models.ProjectMember)
	return member, ok
}
