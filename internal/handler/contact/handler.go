package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/handler"
	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/service/contact"
)

type Handler struct {
	service *contact.Service
}

func NewHandler(service *contact.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SubmitMessage(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	msg, err := h.service.SubmitMessage(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, msg)
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.service.ListMessages(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, msgs)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid message ID"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid message ID"))
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{Status: "success"})
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.SubmitMessage)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	messages := r.Group("/contact-messages")
	{
		messages.GET("", h.ListMessages)
		messages.PATCH("/:id/read", h.MarkRead)
		messages.DELETE("/:id", h.DeleteMessage)
	}
}
