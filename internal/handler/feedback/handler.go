package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/handler"
	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/service/feedback"
)

type Handler struct {
	service *feedback.Service
}

func NewHandler(service *feedback.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fb, err := h.service.CreateFeedback(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, fb)
}

func (h *Handler) ListVisibleFeedback(c *gin.Context) {
	fbs, err := h.service.ListVisibleFeedback(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, fbs)
}

func (h *Handler) ListMyFeedback(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	fbs, err := h.service.ListUserFeedback(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, fbs)
}

func (h *Handler) ListAllFeedback(c *gin.Context) {
	fbs, err := h.service.ListAllFeedback(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, fbs)
}

func (h *Handler) UpdateVisibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid feedback ID"))
		return
	}

	var req model.UpdateFeedbackVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fb, err := h.service.SetVisibility(c.Request.Context(), id, *req.Visible)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, fb)
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/feedback", h.ListVisibleFeedback)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	feedbacks := r.Group("/feedback")
	{
		feedbacks.POST("", h.CreateFeedback)
		feedbacks.GET("/mine", h.ListMyFeedback)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	feedbacks := r.Group("/feedback")
	{
		feedbacks.GET("", h.ListAllFeedback)
		feedbacks.PATCH("/:id/visibility", h.UpdateVisibility)
	}
}
