package place_hold

import (
	"context"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error)
	GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error)
}

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	ListActive(ctx context.Context) ([]*domain.Resource, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context) (*domain.WeekSchedule, error)
	GetSpecialDay(ctx context.Context, date time.Time) (*domain.SpecialDay, error)
	GetConfig(ctx context.Context) (*domain.SchedulingConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator интерфейс генерации токенов удержаний (для тестирования)
type TokenGenerator interface {
	Generate() string
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
