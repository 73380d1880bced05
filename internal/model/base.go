package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// TimeSlotFormat is the canonical wire format for time slots.
const TimeSlotFormat = "15:04:05"

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}
