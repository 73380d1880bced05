package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parlorhq/parlor-api/internal/model"
)

// TxRunner executes a function inside a database transaction. It is the
// unit-of-work handle the booking engine and status machine operate
// through; no package-level pool is ever reached directly.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context) ([]*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	WorkingHours(ctx context.Context, staffID uuid.UUID) ([]*model.WorkingHour, error)
	SetWorkingHours(ctx context.Context, staffID uuid.UUID, hours []*model.WorkingHour) error
}

// SlotRepository manages the persistent (service, date, time) → available
// map. Claim operations are transaction-scoped: they take the caller's tx
// so a failed booking rolls every claim back.
type SlotRepository interface {
	// ClaimForUpdate materializes the slot row if absent and returns it
	// under a row lock, in a single conditional insert-or-fetch step.
	ClaimForUpdate(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (*model.Slot, error)
	SetAvailable(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) error
	ListAvailable(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error)
	Upsert(ctx context.Context, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) (*model.Slot, error)
}

type BookingRepository interface {
	TxRunner

	// LockTimeSlot acquires row locks on any active booking at the given
	// date and time, the coarse double-submission check. It reports
	// whether such a booking exists.
	LockTimeSlot(ctx context.Context, tx *sqlx.Tx, date time.Time, timeSlot string) (bool, error)
	// HasActiveServiceBooking reports whether an active booking already
	// references (service, date, time) via its line items or primary
	// service id.
	HasActiveServiceBooking(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (bool, error)
	Insert(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error
	InsertLineItem(ctx context.Context, tx *sqlx.Tx, item *model.BookingLineItem) error
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Booking, error)
	LineItemsTx(ctx context.Context, tx *sqlx.Tx, bookingID uuid.UUID) ([]*model.BookingLineItem, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error

	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Booking, error)
	LineItems(ctx context.Context, bookingID uuid.UUID) ([]*model.BookingLineItem, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*model.BookingDetails, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error)
	List(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error)
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) error
	Get(ctx context.Context, id uuid.UUID) (*model.Feedback, error)
	ListVisible(ctx context.Context) ([]*model.Feedback, error)
	ListAll(ctx context.Context) ([]*model.Feedback, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Feedback, error)
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context) ([]*model.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
