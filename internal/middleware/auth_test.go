package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/thefankor/KanbanBoard/internal/auth"
	"github.com/thefankor/KanbanBoard/internal/config"
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthMiddlewareTest(t *testing.T) (*gorm.DB, *auth.TokenService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.SetDB(db)

	tokens := auth.NewTokenService(&config.Config{
		AccessSecretKey:          "test-access-secret",
		RefreshSecretKey:         "test-refresh-secret",
		AccessTokenExpireMinutes: 15,
		RefreshTokenExpireDays:   7,
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, tokens
}

func authTestRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	db, tokens := setupAuthMiddlewareTest(t)

	user := models.User{Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	pair, err := tokens.GeneratePair("alice")
	require.NoError(t, err)

	r := authTestRouter(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	_, tokens := setupAuthMiddlewareTest(t)

	r := authTestRouter(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedToken(t *testing.T) {
	_, tokens := setupAuthMiddlewareTest(t)

	r := authTestRouter(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	db, tokens := setupAuthMiddlewareTest(t)

	user := models.User{Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	pair, err := tokens.GeneratePair("alice")
	require.NoError(t, err)

	// A refresh token must not grant access
	r := authTestRouter(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedSubject(t *testing.T) {
	_, tokens := setupAuthMiddlewareTest(t)

	// A token whose subject no longer exists stops working
	pair, err := tokens.GeneratePair("ghost")
	require.NoError(t, err)

	r := authTestRouter(tokens)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
