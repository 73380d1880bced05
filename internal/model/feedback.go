package model

import (
	"github.com/google/uuid"
)

// Feedback is a customer rating, optionally tied to a booking.
type Feedback struct {
	Base
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty" db:"booking_id"`
	ServiceID *uuid.UUID `json:"service_id,omitempty" db:"service_id"`
	Rating    int        `json:"rating" db:"rating"`
	Comment   *string    `json:"comment,omitempty" db:"comment"`
	Visible   bool       `json:"is_visible" db:"is_visible"`

	UserName    string  `json:"user_name,omitempty" db:"user_name"`
	ServiceName *string `json:"service_name,omitempty" db:"service_name"`
}

// CreateFeedbackRequest represents feedback creation parameters
type CreateFeedbackRequest struct {
	Rating    int        `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string    `json:"comment"`
	ServiceID *uuid.UUID `json:"service_id"`
	BookingID *uuid.UUID `json:"booking_id"`
}

// UpdateFeedbackVisibilityRequest toggles admin-controlled visibility.
type UpdateFeedbackVisibilityRequest struct {
	Visible *bool `json:"is_visible" binding:"required"`
}
