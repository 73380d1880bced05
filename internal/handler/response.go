package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/model"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// JSON writes a success envelope with the given HTTP status.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewSuccessResponse(data))
}

// Error translates a service error into the HTTP envelope. Application
// errors carry their own status mapping; anything else is a 500 with a
// generic message so internals never leak to clients.
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Kind == apperrors.KindInternal {
		_ = c.Error(err)
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}

// UserID extracts the authenticated user id set by the auth middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get("user_role")
	return exists && role == model.RoleAdmin
}
