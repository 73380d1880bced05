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

const staffColumns = `id, name, email, phone, specialization, experience_years, bio, is_active, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (id, name, email, phone, specialization, experience_years, bio, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)
	`
	staff.ID = uuid.New()
	staff.Active = true
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.Name,
		staff.Email,
		staff.Phone,
		staff.Specialization,
		staff.ExperienceYears,
		staff.Bio,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 AND is_active = TRUE`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE is_active = TRUE ORDER BY name ASC`
	var staff []*model.Staff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, email = $2, phone = $3, specialization = $4,
			experience_years = $5, bio = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Email,
		staff.Phone,
		staff.Specialization,
		staff.ExperienceYears,
		staff.Bio,
		staff.Active,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
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

func (r *staffRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff SET is_active = FALSE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate staff: %w", err)
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

func (r *staffRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM staff WHERE id = $1 AND is_active = TRUE)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check staff existence: %w", err)
	}
	return exists, nil
}

func (r *staffRepository) WorkingHours(ctx context.Context, staffID uuid.UUID) ([]*model.WorkingHour, error) {
	query := `
		SELECT id, staff_id, day_of_week, start_time, end_time
		FROM staff_working_hours
		WHERE staff_id = $1
		ORDER BY day_of_week
	`
	var hours []*model.WorkingHour
	if err := r.db.SelectContext(ctx, &hours, query, staffID); err != nil {
		return nil, fmt.Errorf("failed to get working hours: %w", err)
	}
	return hours, nil
}

func (r *staffRepository) SetWorkingHours(ctx context.Context, staffID uuid.UUID, hours []*model.WorkingHour) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM staff_working_hours WHERE staff_id = $1`, staffID); err != nil {
			return fmt.Errorf("failed to clear working hours: %w", err)
		}

		insert := `
			INSERT INTO staff_working_hours (id, staff_id, day_of_week, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, h := range hours {
			if _, err := tx.ExecContext(ctx, insert,
				uuid.New(), staffID, h.DayOfWeek, h.StartTime, h.EndTime); err != nil {
				return fmt.Errorf("failed to insert working hour: %w", err)
			}
		}
		return nil
	})
}
