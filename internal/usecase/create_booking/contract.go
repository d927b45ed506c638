package create_booking

import (
	"context"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Hold, error)
	GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error)
	DeleteByToken(ctx context.Context, token string) error
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

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetQuoteWithGracefulDegradation(ctx context.Context, serviceID int64, extraIDs []int64, squareMeters float64) (*catalogservice.Quote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
