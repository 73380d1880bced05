package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/repository"
	"github.com/parlorhq/parlor-api/internal/repository/postgres"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
	"github.com/parlorhq/parlor-api/pkg/logger"
	"github.com/parlorhq/parlor-api/pkg/metrics"
)

const (
	// claimRetries bounds re-runs of the claim transaction when the
	// database reports a serialization or duplicate-key failure caused
	// by a concurrent claim on the same slot row.
	claimRetries = 3
	retryBackoff = 25 * time.Millisecond
)

var timeSlotPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

// Catalog resolves services for price and duration snapshots. Implemented
// by the catalog service; bookings never trust client-supplied prices.
type Catalog interface {
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

type Service struct {
	repo    repository.BookingRepository
	slots   repository.SlotRepository
	outbox  repository.OutboxRepository
	staff   repository.StaffRepository
	catalog Catalog
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(repo repository.BookingRepository, slots repository.SlotRepository, outbox repository.OutboxRepository, staff repository.StaffRepository, catalog Catalog, m *metrics.Metrics, l *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		slots:   slots,
		outbox:  outbox,
		staff:   staff,
		catalog: catalog,
		metrics: m,
		logger:  l,
		now:     time.Now,
	}
}

// CreateBooking claims one slot per requested service atomically: either
// every service's slot for the date+time is claimed and a single booking
// row with its line items is written, or nothing is.
func (s *Service) CreateBooking(ctx context.Context, userID uuid.UUID, req *model.CreateBookingRequest) (*model.BookingDetails, error) {
	date, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	timeSlot, err := normalizeTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := resolveServiceIDs(req)
	if err != nil {
		return nil, err
	}

	services := make([]*model.Service, 0, len(serviceIDs))
	var totalPrice float64
	var totalDuration int
	for _, id := range serviceIDs {
		svc, err := s.catalog.GetService(ctx, id)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindNotFound) {
				return nil, apperrors.NotFound(fmt.Sprintf("service %s", id))
			}
			return nil, err
		}
		services = append(services, svc)
		totalPrice += svc.Price
		totalDuration += svc.Duration
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

	booking := &model.Booking{
		UserID:        userID,
		ServiceID:     services[0].ID,
		StylistID:     req.StylistID,
		BookingDate:   date,
		TimeSlot:      timeSlot,
		Status:        model.BookingStatusPending,
		IsBulk:        len(services) > 1,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
	}

	err = s.withClaimRetry(ctx, func(tx *sqlx.Tx) error {
		return s.claimAndInsert(ctx, tx, booking, services, date, timeSlot)
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			s.metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.WithFields(map[string]interface{}{
		"booking_id": booking.ID,
		"user_id":    userID,
		"services":   len(services),
	}).Info("booking created")

	return s.repo.GetDetails(ctx, booking.ID)
}

func (s *Service) claimAndInsert(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, services []*model.Service, date time.Time, timeSlot string) error {
	// Coarse lock on the date+time across all services keeps two
	// overlapping claims from interleaving their per-service checks.
	taken, err := s.repo.LockTimeSlot(ctx, tx, date, timeSlot)
	if err != nil {
		return fmt.Errorf("failed to lock time slot: %w", err)
	}
	if taken {
		return apperrors.Conflict("selected time slot is already booked")
	}

	// Validate every slot first; mark only once all clear. A failure on
	// the Nth service must not leave slots 1..N-1 claimed.
	claimed := make([]*model.Slot, 0, len(services))
	for _, svc := range services {
		slot, err := s.slots.ClaimForUpdate(ctx, tx, svc.ID, date, timeSlot)
		if err != nil {
			return fmt.Errorf("failed to claim slot for service %s: %w", svc.ID, err)
		}
		if !slot.Available {
			return apperrors.Conflictf("time slot is not available for %s", svc.Name)
		}
		active, err := s.repo.HasActiveServiceBooking(ctx, tx, svc.ID, date, timeSlot)
		if err != nil {
			return fmt.Errorf("failed to check active bookings: %w", err)
		}
		if active {
			return apperrors.Conflictf("time slot is already booked for %s", svc.Name)
		}
		claimed = append(claimed, slot)
	}

	for _, slot := range claimed {
		if err := s.slots.SetAvailable(ctx, tx, slot.ServiceID, date, timeSlot, false); err != nil {
			return fmt.Errorf("failed to mark slot unavailable: %w", err)
		}
	}

	if err := s.repo.Insert(ctx, tx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	for _, svc := range services {
		item := &model.BookingLineItem{
			BookingID:         booking.ID,
			ServiceID:         svc.ID,
			PriceAtBooking:    svc.Price,
			DurationAtBooking: svc.Duration,
		}
		if err := s.repo.InsertLineItem(ctx, tx, item); err != nil {
			return fmt.Errorf("failed to insert booking service: %w", err)
		}
	}

	return s.emitEvent(ctx, tx, model.EventBookingCreated, booking, map[string]interface{}{
		"status": booking.Status,
	})
}

// withClaimRetry re-runs the transactional body on serialization and
// duplicate-key failures, which signal a lost race rather than a bad
// request. Exhausting the budget surfaces as a transient error so
// callers know a retry may succeed.
func (s *Service) withClaimRetry(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	var err error
	for attempt := 0; attempt < claimRetries; attempt++ {
		if attempt > 0 {
			s.metrics.SlotClaimRetries.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
		err = s.repo.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !postgres.IsSerializationFailure(err) && !postgres.IsUniqueViolation(err) {
			return err
		}
		s.logger.WithFields(map[string]interface{}{"attempt": attempt + 1}).Warn("slot claim race lost, retrying")
	}
	return apperrors.Transient("booking system is busy, please retry", err)
}

func (s *Service) emitEvent(ctx context.Context, tx *sqlx.Tx, eventType string, booking *model.Booking, extra map[string]interface{}) error {
	payload := map[string]interface{}{
		"booking_id":   booking.ID,
		"user_id":      booking.UserID,
		"booking_date": booking.BookingDate.Format(model.DateFormat),
		"time_slot":    booking.TimeSlot,
	}
	for k, v := range extra {
		payload[k] = v
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   raw,
	}
	if err := s.outbox.CreateTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to enqueue event: %w", err)
	}
	return nil
}

func resolveServiceIDs(req *model.CreateBookingRequest) ([]uuid.UUID, error) {
	if len(req.Services) > 0 {
		if len(req.Services) == 1 {
			return nil, apperrors.Validation("bulk booking requires at least two services")
		}
		ids := make([]uuid.UUID, 0, len(req.Services))
		seen := make(map[uuid.UUID]bool, len(req.Services))
		for _, sel := range req.Services {
			if sel.ServiceID == uuid.Nil {
				return nil, apperrors.Validation("service id is required")
			}
			if seen[sel.ServiceID] {
				return nil, apperrors.Validation("duplicate service in bulk booking")
			}
			seen[sel.ServiceID] = true
			ids = append(ids, sel.ServiceID)
		}
		return ids, nil
	}
	if req.ServiceID == nil || *req.ServiceID == uuid.Nil {
		return nil, apperrors.Validation("service id is required")
	}
	return []uuid.UUID{*req.ServiceID}, nil
}

func parseBookingDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperrors.Validation("booking date is required")
	}
	date, err := time.Parse(model.DateFormat, raw)
	if err != nil {
		return time.Time{}, apperrors.Validation("booking date must be formatted as YYYY-MM-DD")
	}
	return date, nil
}

// normalizeTimeSlot accepts HH:MM or HH:MM:SS and always stores the
// seconds-padded form so equality comparisons against stored slots hold.
func normalizeTimeSlot(raw string) (string, error) {
	m := timeSlotPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", apperrors.Validation("time slot must be formatted as HH:MM or HH:MM:SS")
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	if m[3] == "" {
		return hour + ":" + m[2] + ":00", nil
	}
	return hour + ":" + m[2] + m[3], nil
}
