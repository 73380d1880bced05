package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parlorhq/parlor-api/internal/model"
)

const bookingColumns = `
	b.id, b.user_id, b.service_id, b.stylist_id, b.booking_date, b.time_slot,
	b.status, b.is_bulk, b.total_price, b.total_duration,
	b.cancellation_reason, b.cancellation_requested_at, b.created_at, b.updated_at
`

const bookingDetailsSelect = `
	SELECT ` + bookingColumns + `,
		u.name AS user_name, u.email AS user_email,
		st.name AS stylist_name,
		string_agg(s.name, ', ') AS service_names,
		string_agg(bs.price_at_booking::text, ', ') AS service_prices,
		string_agg(bs.duration_at_booking::text, ', ') AS service_durations,
		max(f.id::text) AS feedback_id,
		max(f.rating) AS feedback_rating,
		max(f.comment) AS feedback_comment
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN staff st ON st.id = b.stylist_id
	JOIN booking_services bs ON bs.booking_id = b.id
	JOIN services s ON s.id = bs.service_id
	LEFT JOIN feedback f ON f.booking_id = b.id AND f.user_id = b.user_id
`

const bookingDetailsGroupBy = ` GROUP BY b.id, u.name, u.email, st.name`

// LockTimeSlot locks any active booking at (date, time) regardless of
// service. This is the coarse fast-fail for double submissions; per
// service checks follow under the same transaction.
func (r *bookingRepository) LockTimeSlot(ctx context.Context, tx *sqlx.Tx, date time.Time, timeSlot string) (bool, error) {
	query := `
		SELECT id FROM bookings
		WHERE booking_date = $1 AND time_slot = $2
		AND status IN ('PENDING', 'CONFIRMED', 'CANCEL_REQUESTED')
		LIMIT 1
		FOR UPDATE
	`
	var id uuid.UUID
	err := tx.GetContext(ctx, &id, query, date, timeSlot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock time slot: %w", err)
	}
	return true, nil
}

func (r *bookingRepository) HasActiveServiceBooking(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings b
			LEFT JOIN booking_services bs ON bs.booking_id = b.id
			WHERE b.booking_date = $1
			AND b.time_slot = $2
			AND b.status IN ('PENDING', 'CONFIRMED', 'CANCEL_REQUESTED')
			AND (bs.service_id = $3 OR (bs.service_id IS NULL AND b.service_id = $3))
		)
	`
	var exists bool
	if err := tx.GetContext(ctx, &exists, query, date, timeSlot, serviceID); err != nil {
		return false, fmt.Errorf("failed to check service booking conflict: %w", err)
	}
	return exists, nil
}

func (r *bookingRepository) Insert(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, service_id, stylist_id, booking_date, time_slot,
			status, is_bulk, total_price, total_duration, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := tx.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ServiceID,
		booking.StylistID,
		booking.BookingDate,
		booking.TimeSlot,
		booking.Status,
		booking.IsBulk,
		booking.TotalPrice,
		booking.TotalDuration,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) InsertLineItem(ctx context.Context, tx *sqlx.Tx, item *model.BookingLineItem) error {
	query := `
		INSERT INTO booking_services (id, booking_id, service_id, price_at_booking, duration_at_booking)
		VALUES ($1, $2, $3, $4, $5)
	`
	item.ID = uuid.New()
	_, err := tx.ExecContext(ctx, query,
		item.ID, item.BookingID, item.ServiceID, item.PriceAtBooking, item.DurationAtBooking,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking line item: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 FOR UPDATE`
	var booking model.Booking
	if err := tx.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) LineItemsTx(ctx context.Context, tx *sqlx.Tx, bookingID uuid.UUID) ([]*model.BookingLineItem, error) {
	query := `
		SELECT id, booking_id, service_id, price_at_booking, duration_at_booking
		FROM booking_services
		WHERE booking_id = $1
	`
	var items []*model.BookingLineItem
	if err := tx.SelectContext(ctx, &items, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get booking line items: %w", err)
	}
	return items, nil
}

// UpdateStatus persists the status, stylist assignment and cancellation
// fields. It must run in the same transaction as the slot mutations the
// transition requires.
func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, stylist_id = $2, cancellation_reason = $3,
			cancellation_requested_at = $4, updated_at = $5
		WHERE id = $6
	`
	booking.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		booking.Status,
		booking.StylistID,
		booking.CancellationReason,
		booking.CancellationRequestedAt,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 AND b.user_id = $2`
	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id, userID); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) LineItems(ctx context.Context, bookingID uuid.UUID) ([]*model.BookingLineItem, error) {
	query := `
		SELECT id, booking_id, service_id, price_at_booking, duration_at_booking
		FROM booking_services
		WHERE booking_id = $1
	`
	var items []*model.BookingLineItem
	if err := r.db.SelectContext(ctx, &items, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to get booking line items: %w", err)
	}
	return items, nil
}

func (r *bookingRepository) GetDetails(ctx context.Context, id uuid.UUID) (*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` WHERE b.id = $1` + bookingDetailsGroupBy
	var details model.BookingDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error) {
	query := bookingDetailsSelect + ` WHERE b.user_id = $1` + bookingDetailsGroupBy +
		` ORDER BY b.booking_date DESC, b.time_slot DESC`
	var bookings []*model.BookingDetails
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

// List returns admin booking listings with optional filters. The filter
// combinations make this the one query worth building dynamically.
func (r *bookingRepository) List(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error) {
	builder := sq.Select(
		"b.id", "b.user_id", "b.service_id", "b.stylist_id", "b.booking_date", "b.time_slot",
		"b.status", "b.is_bulk", "b.total_price", "b.total_duration",
		"b.cancellation_reason", "b.cancellation_requested_at", "b.created_at", "b.updated_at",
		"u.name AS user_name", "u.email AS user_email",
		"st.name AS stylist_name",
		"string_agg(s.name, ', ') AS service_names",
		"string_agg(bs.price_at_booking::text, ', ') AS service_prices",
		"string_agg(bs.duration_at_booking::text, ', ') AS service_durations",
		"max(f.id::text) AS feedback_id",
		"max(f.rating) AS feedback_rating",
		"max(f.comment) AS feedback_comment",
	).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		LeftJoin("staff st ON st.id = b.stylist_id").
		Join("booking_services bs ON bs.booking_id = b.id").
		Join("services s ON s.id = bs.service_id").
		LeftJoin("feedback f ON f.booking_id = b.id AND f.user_id = b.user_id").
		GroupBy("b.id", "u.name", "u.email", "st.name").
		OrderBy("b.booking_date DESC", "b.time_slot DESC").
		PlaceholderFormat(sq.Dollar)

	if filter != nil {
		if filter.Status != nil {
			builder = builder.Where(sq.Eq{"b.status": *filter.Status})
		}
		if filter.Date != nil {
			builder = builder.Where(sq.Eq{"b.booking_date": *filter.Date})
		}
		if filter.UserID != nil {
			builder = builder.Where(sq.Eq{"b.user_id": *filter.UserID})
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking list query: %w", err)
	}

	var bookings []*model.BookingDetails
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM bookings) AS total_bookings,
			(SELECT count(*) FROM bookings WHERE status = 'CONFIRMED' AND booking_date >= CURRENT_DATE) AS upcoming_appointments,
			(SELECT count(*) FROM bookings WHERE status = 'CANCELLED') AS cancelled_bookings
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	recent := bookingDetailsSelect + bookingDetailsGroupBy + ` ORDER BY b.created_at DESC LIMIT 10`
	if err := r.db.SelectContext(ctx, &stats.RecentBookings, recent); err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	return &stats, nil
}
