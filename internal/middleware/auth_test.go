package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/pkg/auth"
)

func authTestRouter(t *testing.T) (*gin.Engine, auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewJWTService("test-secret", 1)
	mw := NewAuthMiddleware(tokens)

	engine := gin.New()
	protected := engine.Group("/", mw.Authenticate())
	protected.GET("/me", func(c *gin.Context) {
		id := c.MustGet("user_id").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	admin := engine.Group("/admin", mw.Authenticate(), mw.RequireAdmin())
	admin.GET("/stats", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine, tokens
}

func TestAuthenticate(t *testing.T) {
	engine, tokens := authTestRouter(t)

	token, err := tokens.GenerateToken(uuid.New(), "ada@example.com", model.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticate_RejectsForeignSignature(t *testing.T) {
	engine, _ := authTestRouter(t)

	otherIssuer := auth.NewJWTService("other-secret", 1)
	token, err := otherIssuer.GenerateToken(uuid.New(), "eve@example.com", model.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	engine, tokens := authTestRouter(t)

	customerToken, err := tokens.GenerateToken(uuid.New(), "ada@example.com", model.RoleCustomer)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken(uuid.New(), "root@example.com", model.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
