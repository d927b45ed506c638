package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	bookingRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/booking"
	"github.com/fleetbright/FB-SchedulingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	byID        map[int64]*domain.Booking
	byReference map[string]*domain.Booking
	list        []*domain.Booking

	updatedStatus   *domain.BookingStatus
	cancelledID     *int64
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.byReference[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = &id
	f.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		Reference:       "FB-20260831-X7K2QD",
		CustomerName:    "Анна Петрова",
		CustomerEmail:   "anna@example.com",
		BookingDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Генеральная уборка",
		TotalPrice:      4500,
	}
}

func TestGetByReference(t *testing.T) {
	booking := testBooking()
	repo := &fakeBookingRepo{byReference: map[string]*domain.Booking{booking.Reference: booking}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByReference(context.Background(), booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, resp.Reference)
	assert.Equal(t, "2026-08-31", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)

	_, err = svc.GetByReference(context.Background(), "FB-20260831-MISSIN")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByReference(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{testBooking()}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Некорректный статус в фильтре
	badStatus := "unknown"
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	booking := testBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{booking.ID: booking}}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{
		CancellationReason: "клиент передумал",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelledID)
	assert.Equal(t, booking.ID, *repo.cancelledID)
	assert.Equal(t, "клиент передумал", repo.cancelledReason)
}

func TestCancel_TerminalStatus(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{booking.ID: booking}}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Nil(t, repo.cancelledID)
}

func TestCancel_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 999, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus(t *testing.T) {
	booking := testBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{booking.ID: booking}}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusPaid, *repo.updatedStatus)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	booking := testBooking() // confirmed
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{booking.ID: booking}}
	svc := NewService(repo, nopLogger{})

	// confirmed -> completed минуя paid запрещен
	err := svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	booking := testBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{booking.ID: booking}}
	svc := NewService(repo, nopLogger{})

	err := svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
