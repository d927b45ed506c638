package get_available_slots

import (
	"context"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDate получает бронирования на конкретную дату
	GetByDate(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	// GetActiveByDate получает неистекшие удержания на дату
	GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error)
	// DeleteExpired удаляет истекшие удержания (попутная чистка)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	// ListActive получает активные ресурсы в порядке приоритета
	ListActive(ctx context.Context) ([]*domain.Resource, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context) (*domain.WeekSchedule, error)
	GetSpecialDay(ctx context.Context, date time.Time) (*domain.SpecialDay, error)
	GetConfig(ctx context.Context) (*domain.SchedulingConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
