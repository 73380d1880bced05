package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/repository"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

type Service struct {
	repo     repository.FeedbackRepository
	bookings repository.BookingRepository
}

func NewService(repo repository.FeedbackRepository, bookings repository.BookingRepository) *Service {
	return &Service{repo: repo, bookings: bookings}
}

// CreateFeedback records a rating. When tied to a booking, the booking
// must belong to the caller and be completed.
func (s *Service) CreateFeedback(ctx context.Context, userID uuid.UUID, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}

	fb := &model.Feedback{
		UserID:    userID,
		BookingID: req.BookingID,
		ServiceID: req.ServiceID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Visible:   true,
	}

	if req.BookingID != nil {
		booking, err := s.bookings.GetOwned(ctx, *req.BookingID, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("booking")
			}
			return nil, fmt.Errorf("failed to load booking: %w", err)
		}
		if booking.Status != model.BookingStatusCompleted {
			return nil, apperrors.Validation("feedback can only be left on completed bookings")
		}
		if fb.ServiceID == nil {
			fb.ServiceID = &booking.ServiceID
		}
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return fb, nil
}

// ListVisibleFeedback is the public listing; hidden entries are omitted.
func (s *Service) ListVisibleFeedback(ctx context.Context) ([]*model.Feedback, error) {
	fbs, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return fbs, nil
}

func (s *Service) ListAllFeedback(ctx context.Context) ([]*model.Feedback, error) {
	fbs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return fbs, nil
}

func (s *Service) ListUserFeedback(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error) {
	fbs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return fbs, nil
}

func (s *Service) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) (*model.Feedback, error) {
	if err := s.repo.SetVisibility(ctx, id, visible); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("feedback")
		}
		return nil, fmt.Errorf("failed to update feedback visibility: %w", err)
	}
	return s.repo.Get(ctx, id)
}
