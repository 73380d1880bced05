package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parlorhq/parlor-api/internal/model"
)

// ClaimForUpdate materializes the availability row for (service, date,
// time) if it does not exist and returns it under a row lock. The
// conditional insert and the locked read run as one step inside the
// caller's transaction, so two racing claimants serialize on the row
// instead of failing on a duplicate key.
func (r *slotRepository) ClaimForUpdate(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (*model.Slot, error) {
	insert := `
		INSERT INTO availability (id, service_id, date, time_slot, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		ON CONFLICT (service_id, date, time_slot) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insert, uuid.New(), serviceID, date, timeSlot, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to materialize slot: %w", err)
	}

	query := `
		SELECT id, service_id, date, time_slot, is_available, created_at, updated_at
		FROM availability
		WHERE service_id = $1 AND date = $2 AND time_slot = $3
		FOR UPDATE
	`
	var slot model.Slot
	if err := tx.GetContext(ctx, &slot, query, serviceID, date, timeSlot); err != nil {
		return nil, fmt.Errorf("failed to lock slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) SetAvailable(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) error {
	query := `
		UPDATE availability
		SET is_available = $1, updated_at = $2
		WHERE service_id = $3 AND date = $4 AND time_slot = $5
	`
	if _, err := tx.ExecContext(ctx, query, available, time.Now(), serviceID, date, timeSlot); err != nil {
		return fmt.Errorf("failed to update slot availability: %w", err)
	}
	return nil
}

func (r *slotRepository) ListAvailable(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, service_id, date, time_slot, is_available, created_at, updated_at
		FROM availability
		WHERE service_id = $1 AND is_available = TRUE
	`
	args := []interface{}{serviceID}

	if date != nil {
		query += " AND date = $2"
		args = append(args, *date)
	} else {
		query += " AND date >= CURRENT_DATE"
	}

	query += " ORDER BY date, time_slot"

	var slots []*model.Slot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}
	return slots, nil
}

// Upsert is the admin path for seeding or overriding a slot's
// availability outside the booking flow.
func (r *slotRepository) Upsert(ctx context.Context, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) (*model.Slot, error) {
	query := `
		INSERT INTO availability (id, service_id, date, time_slot, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (service_id, date, time_slot)
		DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = EXCLUDED.updated_at
		RETURNING id, service_id, date, time_slot, is_available, created_at, updated_at
	`
	var slot model.Slot
	err := r.db.GetContext(ctx, &slot, query, uuid.New(), serviceID, date, timeSlot, available, time.Now())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("slot upsert returned no row")
		}
		return nil, fmt.Errorf("failed to upsert slot: %w", err)
	}
	return &slot, nil
}
