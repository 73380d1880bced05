package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/parlorhq/parlor-api/internal/model"
)

func TestIsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		role interface{}
		want bool
	}{
		{"admin role", model.RoleAdmin, true},
		{"customer role", model.RoleCustomer, false},
		{"no role set", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.role != nil {
				c.Set("user_role", tt.role)
			}
			assert.Equal(t, tt.want, IsAdmin(c))
		})
	}
}
