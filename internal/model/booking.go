package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "PENDING"
	BookingStatusConfirmed       BookingStatus = "CONFIRMED"
	BookingStatusCancelRequested BookingStatus = "CANCEL_REQUESTED"
	BookingStatusCompleted       BookingStatus = "COMPLETED"
	BookingStatusCancelled       BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses under which a booking still occupies
// its slots.
var ActiveStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCancelRequested,
}

// IsActive reports whether a booking in this status still occupies its slots.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCancelRequested
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Valid reports whether s is a known status value.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelRequested,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is an appointment occupying one time slot across one or more
// services. ServiceID holds the first line item's service for
// single-service display; the line items are authoritative.
type Booking struct {
	Base
	UserID                  uuid.UUID     `json:"user_id" db:"user_id"`
	ServiceID               uuid.UUID     `json:"service_id" db:"service_id"`
	StylistID               *uuid.UUID    `json:"stylist_id,omitempty" db:"stylist_id"`
	BookingDate             time.Time     `json:"booking_date" db:"booking_date"`
	TimeSlot                string        `json:"time_slot" db:"time_slot"`
	Status                  BookingStatus `json:"status" db:"status"`
	IsBulk                  bool          `json:"is_bulk" db:"is_bulk"`
	TotalPrice              float64       `json:"total_price" db:"total_price"`
	TotalDuration           int           `json:"total_duration" db:"total_duration"`
	CancellationReason      *string       `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CancellationRequestedAt *time.Time    `json:"cancellation_requested_at,omitempty" db:"cancellation_requested_at"`

	LineItems []*BookingLineItem `json:"line_items,omitempty" db:"-"`
}

// StartsAt combines the booking date and time slot into a point in time.
func (b *Booking) StartsAt() time.Time {
	t, err := time.Parse(TimeSlotFormat, b.TimeSlot)
	if err != nil {
		return b.BookingDate
	}
	d := b.BookingDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, d.Location())
}

// ServiceIDs returns the services referenced by the booking's line items,
// falling back to the primary service id when no line items are loaded.
func (b *Booking) ServiceIDs() []uuid.UUID {
	if len(b.LineItems) == 0 {
		return []uuid.UUID{b.ServiceID}
	}
	ids := make([]uuid.UUID, 0, len(b.LineItems))
	for _, li := range b.LineItems {
		ids = append(ids, li.ServiceID)
	}
	return ids
}

// BookingLineItem freezes one service's price and duration at booking
// time, independent of later catalog changes.
type BookingLineItem struct {
	ID                uuid.UUID `json:"id" db:"id"`
	BookingID         uuid.UUID `json:"booking_id" db:"booking_id"`
	ServiceID         uuid.UUID `json:"service_id" db:"service_id"`
	PriceAtBooking    float64   `json:"price_at_booking" db:"price_at_booking"`
	DurationAtBooking int       `json:"duration_at_booking" db:"duration_at_booking"`
}

// BookingDetails is a booking joined with requester identity and
// aggregated service data for display.
type BookingDetails struct {
	Booking
	UserName         string   `json:"user_name" db:"user_name"`
	UserEmail        string   `json:"user_email" db:"user_email"`
	StylistName      *string  `json:"stylist_name,omitempty" db:"stylist_name"`
	ServiceNames     string   `json:"service_names" db:"service_names"`
	ServicePrices    string   `json:"service_prices" db:"service_prices"`
	ServiceDurations string   `json:"service_durations" db:"service_durations"`
	FeedbackID       *string  `json:"feedback_id,omitempty" db:"feedback_id"`
	FeedbackRating   *int     `json:"feedback_rating,omitempty" db:"feedback_rating"`
	FeedbackComment  *string  `json:"feedback_comment,omitempty" db:"feedback_comment"`
}

// ServiceSelection is one entry of a bulk booking request.
type ServiceSelection struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

// CreateBookingRequest accepts either a single service id or a service
// selection list; the two shapes are mutually exclusive.
type CreateBookingRequest struct {
	ServiceID   *uuid.UUID         `json:"service_id"`
	Services    []ServiceSelection `json:"services" binding:"omitempty,dive"`
	BookingDate string             `json:"booking_date" binding:"required,calendardate"`
	TimeSlot    string             `json:"time_slot" binding:"required,timeslot"`
	StylistID   *uuid.UUID         `json:"stylist_id"`
}

// CancelBookingRequest carries the requester's optional reason.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellation_reason"`
}

// UpdateStatusRequest is the admin-only status change payload.
type UpdateStatusRequest struct {
	Status    BookingStatus `json:"status" binding:"required"`
	StylistID *uuid.UUID    `json:"stylist_id"`
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status *BookingStatus
	Date   *time.Time
	UserID *uuid.UUID
}

// DashboardStats summarizes bookings for the admin dashboard.
type DashboardStats struct {
	TotalBookings        int               `json:"total_bookings" db:"total_bookings"`
	UpcomingAppointments int               `json:"upcoming_appointments" db:"upcoming_appointments"`
	CancelledBookings    int               `json:"cancelled_bookings" db:"cancelled_bookings"`
	RecentBookings       []*BookingDetails `json:"recent_bookings" db:"-"`
}
