package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/constants"
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/models"
)

// RequireColumnAdmin resolves the ownership chain for a column-scoped
// action: column -> project -> membership. The user must hold an admin or
// owner role on the column's project. Missing column or membership answers
// 404; an insufficient role answers 403.
func RequireColumnAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		columnIDStr := c.Param("id")
		columnID, err := strconv.ParseUint(columnIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid column ID",
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

		var column models.Column
		if err := database.GetDB().First(&column, columnID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Column not found",
			})
			c.Abort()
			return
		}

		var member models.ProjectMember
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", column.ProjectID, userID).
			First(&member).Error
		if err != nil {
			// 404 instead of 403 to avoid leaking column existence
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Column not found",
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

		c.Set(constants.ContextKeyColumn, column)
		c.Set(constants.ContextKeyProjectMember, member)
		c.Next()
	}
}
