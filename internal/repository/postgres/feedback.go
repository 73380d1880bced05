package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/model"
)

const feedbackSelect = `
	SELECT f.id, f.user_id, f.booking_id, f.service_id, f.rating, f.comment,
		f.is_visible, f.created_at, f.updated_at,
		u.name AS user_name, s.name AS service_name
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	LEFT JOIN services s ON s.id = f.service_id
`

func (r *feedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, booking_id, service_id, rating, comment, is_visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)
	`
	fb.ID = uuid.New()
	fb.Visible = true
	fb.CreatedAt = time.Now()
	fb.UpdatedAt = fb.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		fb.ID,
		fb.UserID,
		fb.BookingID,
		fb.ServiceID,
		fb.Rating,
		fb.Comment,
		fb.CreatedAt,
		fb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id uuid.UUID) (*model.Feedback, error) {
	query := feedbackSelect + ` WHERE f.id = $1`
	var fb model.Feedback
	if err := r.db.GetContext(ctx, &fb, query, id); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) ListVisible(ctx context.Context) ([]*model.Feedback, error) {
	query := feedbackSelect + ` WHERE f.is_visible = TRUE ORDER BY f.created_at DESC`
	var feedback []*model.Feedback
	if err := r.db.SelectContext(ctx, &feedback, query); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]*model.Feedback, error) {
	query := feedbackSelect + ` ORDER BY f.created_at DESC`
	var feedback []*model.Feedback
	if err := r.db.SelectContext(ctx, &feedback, query); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error) {
	query := feedbackSelect + ` WHERE f.user_id = $1 ORDER BY f.created_at DESC`
	var feedback []*model.Feedback
	if err := r.db.SelectContext(ctx, &feedback, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user feedback: %w", err)
	}
	return feedback, nil
}

func (r *feedbackRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE feedback SET is_visible = $1, updated_at = $2 WHERE id = $3`,
		visible, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update feedback visibility: %w", err)
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
