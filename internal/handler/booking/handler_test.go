package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/parlorhq/parlor-api/internal/model"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateBooking(ctx context.Context, userID uuid.UUID, req *model.CreateBookingRequest) (*model.BookingDetails, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID, admin bool) (*model.BookingDetails, error) {
	args := m.Called(ctx, userID, bookingID, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockService) RequestCancellation(ctx context.Context, userID, bookingID uuid.UUID, req *model.CancelBookingRequest) (*model.BookingDetails, error) {
	args := m.Called(ctx, userID, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockService) ListAvailability(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error) {
	args := m.Called(ctx, serviceID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Slot), args.Error(1)
}

func (m *MockService) SetAvailability(ctx context.Context, req *model.SetAvailabilityRequest) (*model.Slot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slot), args.Error(1)
}

func (m *MockService) ListBookings(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockService) SetStatus(ctx context.Context, bookingID uuid.UUID, req *model.UpdateStatusRequest) (*model.BookingDetails, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func cancelRouter(svc Service, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings/:id/cancel", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, NewHandler(svc).RequestCancellation)
	return r
}

func TestCancelBooking_EmptyBodyAccepted(t *testing.T) {
	svc := new(MockService)
	userID := uuid.New()
	bookingID := uuid.New()

	svc.On("RequestCancellation", mock.Anything, userID, bookingID,
		mock.MatchedBy(func(req *model.CancelBookingRequest) bool {
			return req.CancellationReason == nil
		})).Return(&model.BookingDetails{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID.String()+"/cancel", nil)
	cancelRouter(svc, userID).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCancelBooking_ReasonPassedThrough(t *testing.T) {
	svc := new(MockService)
	userID := uuid.New()
	bookingID := uuid.New()

	svc.On("RequestCancellation", mock.Anything, userID, bookingID,
		mock.MatchedBy(func(req *model.CancelBookingRequest) bool {
			return req.CancellationReason != nil && *req.CancellationReason == "double booked"
		})).Return(&model.BookingDetails{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID.String()+"/cancel",
		strings.NewReader(`{"cancellation_reason":"double booked"}`))
	req.Header.Set("Content-Type", "application/json")
	cancelRouter(svc, userID).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCancelBooking_MalformedBodyRejected(t *testing.T) {
	svc := new(MockService)
	userID := uuid.New()
	bookingID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID.String()+"/cancel",
		strings.NewReader(`{"cancellation_reason":`))
	req.Header.Set("Content-Type", "application/json")
	cancelRouter(svc, userID).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RequestCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
