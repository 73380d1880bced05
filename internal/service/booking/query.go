package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/model"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

func (s *Service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID, admin bool) (*model.BookingDetails, error) {
	if !admin {
		if _, err := s.repo.GetOwned(ctx, bookingID, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("booking")
			}
			return nil, fmt.Errorf("failed to load booking: %w", err)
		}
	}
	details, err := s.repo.GetDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return details, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) ListBookings(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error) {
	if filter != nil && filter.Status != nil {
		if !filter.Status.Valid() {
			return nil, apperrors.Validationf("unknown status %q", *filter.Status)
		}
	}
	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}

// ListAvailability exposes the slot store for a service; absent rows mean
// available, so the listing only reports rows that were ever materialized.
func (s *Service) ListAvailability(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error) {
	if _, err := s.catalog.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	slots, err := s.slots.ListAvailable(ctx, serviceID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return slots, nil
}

// SetAvailability is the admin override for a single slot row, used to
// block out a slot or reopen one after manual cleanup.
func (s *Service) SetAvailability(ctx context.Context, req *model.SetAvailabilityRequest) (*model.Slot, error) {
	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}
	timeSlot, err := normalizeTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetService(ctx, req.ServiceID); err != nil {
		return nil, err
	}
	if req.Available == nil {
		return nil, apperrors.Validation("is_available is required")
	}
	slot, err := s.slots.Upsert(ctx, req.ServiceID, date, timeSlot, *req.Available)
	if err != nil {
		return nil, fmt.Errorf("failed to set availability: %w", err)
	}
	return slot, nil
}
