package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/parlorhq/parlor-api/internal/model"
)

type MockBookingRepository struct {
	mock.Mock
}

// WithTx runs the body directly; transactional behavior itself is covered
// by the repository tests.
func (m *MockBookingRepository) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func (m *MockBookingRepository) LockTimeSlot(ctx context.Context, tx *sqlx.Tx, date time.Time, timeSlot string) (bool, error) {
	args := m.Called(ctx, tx, date, timeSlot)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) HasActiveServiceBooking(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	args := m.Called(ctx, tx, serviceID, date, timeSlot)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Insert(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	args := m.Called(ctx, tx, booking)
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockBookingRepository) InsertLineItem(ctx context.Context, tx *sqlx.Tx, item *model.BookingLineItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockBookingRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) LineItemsTx(ctx context.Context, tx *sqlx.Tx, bookingID uuid.UUID) ([]*model.BookingLineItem, error) {
	args := m.Called(ctx, tx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingLineItem), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, booking *model.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) LineItems(ctx context.Context, bookingID uuid.UUID) ([]*model.BookingLineItem, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingLineItem), args.Error(1)
}

func (m *MockBookingRepository) GetDetails(ctx context.Context, id uuid.UUID) (*model.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter *model.BookingFilter) ([]*model.BookingDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) ClaimForUpdate(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string) (*model.Slot, error) {
	args := m.Called(ctx, tx, serviceID, date, timeSlot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slot), args.Error(1)
}

func (m *MockSlotRepository) SetAvailable(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) error {
	args := m.Called(ctx, tx, serviceID, date, timeSlot, available)
	return args.Error(0)
}

func (m *MockSlotRepository) ListAvailable(ctx context.Context, serviceID uuid.UUID, date *time.Time) ([]*model.Slot, error) {
	args := m.Called(ctx, serviceID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Slot), args.Error(1)
}

func (m *MockSlotRepository) Upsert(ctx context.Context, serviceID uuid.UUID, date time.Time, timeSlot string, available bool) (*model.Slot, error) {
	args := m.Called(ctx, serviceID, date, timeSlot, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slot), args.Error(1)
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	args := m.Called(ctx, id, status, errMessage)
	return args.Error(0)
}

func (m *MockOutboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Staff), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Staff), args.Error(1)
}

func (m *MockStaffRepository) Update(ctx context.Context, staff *model.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStaffRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStaffRepository) WorkingHours(ctx context.Context, staffID uuid.UUID) ([]*model.WorkingHour, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WorkingHour), args.Error(1)
}

func (m *MockStaffRepository) SetWorkingHours(ctx context.Context, staffID uuid.UUID, hours []*model.WorkingHour) error {
	args := m.Called(ctx, staffID, hours)
	return args.Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}
