package booking

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/handler"
	"github.com/parlorhq/parlor-api/internal/model"
)

// Service is the booking surface the HTTP layer drives.
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *model.CreateBookingRequest) (*model.BookingDetails, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID, admin bool) (*model.BookingDetails, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error)
	RequestCancellation(ctx context.Context, userID, bookingID uuid.UUID, req *model.CancelBookingRequest) (*model.BookingDetails, error)
	ListAvailability(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error)
	SetAvailability(ctx context.Context, req *model.SetAvailabilityRequest) (*model.Slot, error)
	ListBookings(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error)
	SetStatus(ctx context.Context, bookingID uuid.UUID, req *model.UpdateStatusRequest) (*model.BookingDetails, error)
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	details, err := h.service.CreateBooking(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusCreated, details)
}

func (h *Handler) GetBooking(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	details, err := h.service.GetBooking(c.Request.Context(), userID, id, handler.IsAdmin(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, details)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, bookings)
}

func (h *Handler) RequestCancellation(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	// The reason is optional and so is the body itself.
	var req model.CancelBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	details, err := h.service.RequestCancellation(c.Request.Context(), userID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, details)
}

func (h *Handler) ListAvailability(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(model.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format"))
			return
		}
		date = &parsed
	}

	slots, err := h.service.ListAvailability(c.Request.Context(), serviceID, date)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, slots)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.RequestCancellation)
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.ListAvailability)
}

// admin surface

func (h *Handler) ListBookings(c *gin.Context) {
	filter := &model.BookingFilter{}
	if status := c.Query("status"); status != "" {
		bs := model.BookingStatus(status)
		filter.Status = &bs
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(model.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format"))
			return
		}
		filter.Date = &date
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
			return
		}
		filter.UserID = &userID
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, bookings)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	details, err := h.service.SetStatus(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, details)
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req model.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	slot, err := h.service.SetAvailability(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, slot)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	handler.JSON(c, http.StatusOK, stats)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.ListBookings)
	r.PATCH("/bookings/:id/status", h.UpdateStatus)
	r.PUT("/availability", h.SetAvailability)
	r.GET("/dashboard", h.DashboardStats)
}
