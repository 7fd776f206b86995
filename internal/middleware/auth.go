package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/auth"
	"github.com/thefankor/KanbanBoard/internal/constants"
	"github.com/thefankor/KanbanBoard/internal/database"
	apierrors "github.com/thefankor/KanbanBoard/internal/errors"
	"github.com/thefankor/KanbanBoard/internal/models"
)

// RequireAuth authenticates the request from the bearer access token. The
// subject is re-resolved against the user table on every request. Expired
// tokens, malformed tokens, and unknown subjects all answer 401 but stay
// distinguishable in the server log.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				log.Printf("auth: access token expired")
			} else {
				log.Printf("auth: invalid access token: %v", err)
			}
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Where("username = ?", claims.Username).First(&user).Error; err != nil {
			log.Printf("auth: token subject %q not found", claims.Username)
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
