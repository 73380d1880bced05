package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parlorhq/parlor-api/internal/model"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

// allowedTransitions is the admin-side status machine. PENDING is
// reachable only through creation, and the terminal states COMPLETED
// and CANCELLED have no outgoing edges.
var allowedTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending:         {model.BookingStatusConfirmed, model.BookingStatusCancelled},
	model.BookingStatusConfirmed:       {model.BookingStatusCompleted, model.BookingStatusCancelled, model.BookingStatusCancelRequested},
	model.BookingStatusCancelRequested: {model.BookingStatusCancelled, model.BookingStatusConfirmed},
	model.BookingStatusCompleted:       {},
	model.BookingStatusCancelled:       {},
}

func transitionAllowed(from, to model.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetStatus moves a booking through the admin status machine, keeping
// the availability rows of every referenced service in sync within the
// same transaction. Re-applying the current status is an idempotent
// no-op so a double-submitted confirmation cannot fail or double-claim.
func (s *Service) SetStatus(ctx context.Context, bookingID uuid.UUID, req *model.UpdateStatusRequest) (*model.BookingDetails, error) {
	newStatus := req.Status
	if !newStatus.Valid() {
		return nil, apperrors.Validationf("unknown status %q", req.Status)
	}
	if newStatus == model.BookingStatusPending {
		return nil, apperrors.InvalidTransition("bookings can only become pending at creation")
	}

	if req.StylistID != nil {
		ok, err := s.staff.Exists(ctx, *req.StylistID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stylist: %w", err)
		}
		if !ok {
			return nil, apperrors.NotFound("stylist")
		}
	}

	var from model.BookingStatus
	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("booking")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		from = booking.Status

		if newStatus != from {
			if !transitionAllowed(from, newStatus) {
				return apperrors.InvalidTransition(fmt.Sprintf("cannot move booking from %s to %s", from, newStatus))
			}
			if err := s.syncSlots(ctx, tx, booking, newStatus); err != nil {
				return err
			}
		}

		booking.Status = newStatus
		if req.StylistID != nil {
			booking.StylistID = req.StylistID
		}
		if err := s.repo.UpdateStatus(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		if newStatus == from {
			return nil
		}
		return s.emitEvent(ctx, tx, model.EventBookingStatusChanged, booking, map[string]interface{}{
			"from": from,
			"to":   newStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	if from != newStatus {
		s.metrics.StatusTransitions.WithLabelValues(string(from), string(newStatus)).Inc()
	}
	return s.repo.GetDetails(ctx, bookingID)
}

// syncSlots applies the slot-store side effect of a status change.
// Confirming claims every referenced slot; cancelling releases them.
// Both writes are idempotent, so re-confirming after a drift repair
// leaves the store unchanged. CANCEL_REQUESTED keeps slots held until
// an admin decides.
func (s *Service) syncSlots(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, to model.BookingStatus) error {
	var available bool
	switch to {
	case model.BookingStatusConfirmed:
		available = false
	case model.BookingStatusCancelled:
		available = true
	default:
		return nil
	}

	items, err := s.repo.LineItemsTx(ctx, tx, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to load booking services: %w", err)
	}
	booking.LineItems = items

	for _, serviceID := range booking.ServiceIDs() {
		if err := s.slots.SetAvailable(ctx, tx, serviceID, booking.BookingDate, booking.TimeSlot, available); err != nil {
			return fmt.Errorf("failed to sync slot for service %s: %w", serviceID, err)
		}
	}
	return nil
}

// RequestCancellation is the requester-facing cancellation path: it
// parks the booking in CANCEL_REQUESTED and leaves every slot held
// until an admin approves or rejects the request.
func (s *Service) RequestCancellation(ctx context.Context, userID, bookingID uuid.UUID, req *model.CancelBookingRequest) (*model.BookingDetails, error) {
	var from model.BookingStatus
	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.repo.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("booking")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		from = booking.Status
		if booking.UserID != userID {
			return apperrors.NotFound("booking")
		}
		if booking.Status != model.BookingStatusPending && booking.Status != model.BookingStatusConfirmed {
			return apperrors.Validation("only pending or confirmed bookings can be cancelled")
		}
		if !booking.StartsAt().After(s.now()) {
			return apperrors.Validation("cannot cancel a booking that has already started")
		}

		now := s.now()
		reason := ""
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		booking.Status = model.BookingStatusCancelRequested
		booking.CancellationReason = req.CancellationReason
		booking.CancellationRequestedAt = &now
		if err := s.repo.UpdateStatus(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to record cancellation request: %w", err)
		}

		return s.emitEvent(ctx, tx, model.EventBookingCancelRequest, booking, map[string]interface{}{
			"reason": reason,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(from), string(model.BookingStatusCancelRequested)).Inc()
	return s.repo.GetDetails(ctx, bookingID)
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
