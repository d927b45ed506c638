package domain

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusOnHold    BookingStatus = "on_hold"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPaid      BookingStatus = "paid"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed or in-flight cleaning job reservation.
// Once created it is the durable source of truth for conflict checks.
type Booking struct {
	ID              int64
	Reference       string // externally visible unique reference, e.g. "FB-20260831-X7K2QD"
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ResourceID      *int64 // assigned truck; weak reference, survives resource deactivation
	Status          BookingStatus

	// Denormalized catalog data for history
	ServiceName string
	TotalPrice  float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot for conflict purposes
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusOnHold ||
		b.Status == StatusConfirmed ||
		b.Status == StatusPaid
}

// IsTerminal returns true if no further status transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// EndTime returns the end of the booked window (exclusive)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Lifecycle: pending -> on_hold/confirmed -> paid -> completed, with
// cancellation reachable from any non-terminal state.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}

	switch b.Status {
	case StatusPending:
		return next == StatusOnHold || next == StatusConfirmed
	case StatusOnHold:
		return next == StatusConfirmed || next == StatusPaid
	case StatusConfirmed:
		return next == StatusPaid
	case StatusPaid:
		return next == StatusCompleted
	default:
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	Date            *time.Time     // Конкретная дата (опционально)
	ResourceID      *int64         // Фильтр по ресурсу (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отменённые, завершённые)
}
