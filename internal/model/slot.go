package model

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the smallest schedulable unit: one service at one date and
// time. Rows are materialized lazily; a missing row means the slot has
// never been claimed and is considered available.
type Slot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ServiceID uuid.UUID `json:"service_id" db:"service_id"`
	Date      time.Time `json:"date" db:"date"`
	TimeSlot  string    `json:"time_slot" db:"time_slot"`
	Available bool      `json:"is_available" db:"is_available"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SetAvailabilityRequest is the admin upsert payload for a slot.
type SetAvailabilityRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Date      string    `json:"date" binding:"required,calendardate"`
	TimeSlot  string    `json:"time_slot" binding:"required,timeslot"`
	Available *bool     `json:"is_available" binding:"required"`
}
