package feedback

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/repository"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	args := m.Called(ctx, fb)
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockFeedbackRepository) Get(ctx context.Context, id uuid.UUID) (*model.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListVisible(ctx context.Context) ([]*model.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListAll(ctx context.Context) ([]*model.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	args := m.Called(ctx, id, visible)
	return args.Error(0)
}

// stubBookingRepo satisfies repository.BookingRepository through the
// embedded interface; only GetOwned is reachable from this package.
type stubBookingRepo struct {
	repository.BookingRepository
	mock.Mock
}

func (m *stubBookingRepo) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func TestCreateFeedback_OnCompletedBooking(t *testing.T) {
	repo := new(MockFeedbackRepository)
	bookings := new(stubBookingRepo)
	svc := NewService(repo, bookings)

	userID := uuid.New()
	bookingID := uuid.New()
	serviceID := uuid.New()

	booking := &model.Booking{
		UserID:    userID,
		ServiceID: serviceID,
		Status:    model.BookingStatusCompleted,
	}
	booking.ID = bookingID

	bookings.On("GetOwned", mock.Anything, bookingID, userID).Return(booking, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(fb *model.Feedback) bool {
		return fb.UserID == userID && fb.Rating == 5 && fb.Visible &&
			fb.ServiceID != nil && *fb.ServiceID == serviceID
	})).Return(nil)

	fb, err := svc.CreateFeedback(context.Background(), userID, &model.CreateFeedbackRequest{
		Rating:    5,
		BookingID: &bookingID,
	})
	require.NoError(t, err)
	require.NotNil(t, fb.ServiceID)
	assert.Equal(t, serviceID, *fb.ServiceID)
	repo.AssertExpectations(t)
}

func TestCreateFeedback_RejectsIncompleteBooking(t *testing.T) {
	repo := new(MockFeedbackRepository)
	bookings := new(stubBookingRepo)
	svc := NewService(repo, bookings)

	userID := uuid.New()
	bookingID := uuid.New()

	for _, status := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			booking := &model.Booking{UserID: userID, Status: status}
			booking.ID = bookingID
			bookings.On("GetOwned", mock.Anything, bookingID, userID).Return(booking, nil).Once()

			_, err := svc.CreateFeedback(context.Background(), userID, &model.CreateFeedbackRequest{
				Rating:    4,
				BookingID: &bookingID,
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFeedback_BookingNotOwned(t *testing.T) {
	repo := new(MockFeedbackRepository)
	bookings := new(stubBookingRepo)
	svc := NewService(repo, bookings)

	userID := uuid.New()
	bookingID := uuid.New()
	bookings.On("GetOwned", mock.Anything, bookingID, userID).Return(nil, sql.ErrNoRows)

	_, err := svc.CreateFeedback(context.Background(), userID, &model.CreateFeedbackRequest{
		Rating:    3,
		BookingID: &bookingID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateFeedback_RatingBounds(t *testing.T) {
	svc := NewService(new(MockFeedbackRepository), new(stubBookingRepo))

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateFeedback(context.Background(), uuid.New(), &model.CreateFeedbackRequest{
			Rating: rating,
		})
		require.Error(t, err, "rating %d", rating)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	}
}

func TestCreateFeedback_WithoutBooking(t *testing.T) {
	repo := new(MockFeedbackRepository)
	bookings := new(stubBookingRepo)
	svc := NewService(repo, bookings)

	userID := uuid.New()
	serviceID := uuid.New()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	fb, err := svc.CreateFeedback(context.Background(), userID, &model.CreateFeedbackRequest{
		Rating:    4,
		ServiceID: &serviceID,
	})
	require.NoError(t, err)
	assert.Equal(t, serviceID, *fb.ServiceID)
	assert.Nil(t, fb.BookingID)
	bookings.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetVisibility(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewService(repo, new(stubBookingRepo))

	id := uuid.New()
	hidden := &model.Feedback{Rating: 2, Visible: false}
	hidden.ID = id

	repo.On("SetVisibility", mock.Anything, id, false).Return(nil)
	repo.On("Get", mock.Anything, id).Return(hidden, nil)

	fb, err := svc.SetVisibility(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, fb.Visible)
}

func TestSetVisibility_NotFound(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewService(repo, new(stubBookingRepo))

	id := uuid.New()
	repo.On("SetVisibility", mock.Anything, id, true).Return(sql.ErrNoRows)

	_, err := svc.SetVisibility(context.Background(), id, true)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
