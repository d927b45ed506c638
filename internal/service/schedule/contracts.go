package schedule

import (
	"context"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context) (*domain.WeekSchedule, error)
	UpdateDayHours(ctx context.Context, weekday time.Weekday, hours domain.DayHours) error
	GetSpecialDay(ctx context.Context, date time.Time) (*domain.SpecialDay, error)
	ListSpecialDays(ctx context.Context, from, to time.Time) ([]*domain.SpecialDay, error)
	CreateSpecialDay(ctx context.Context, day *domain.SpecialDay) (*domain.SpecialDay, error)
	DeactivateSpecialDay(ctx context.Context, id int64) error
	GetConfig(ctx context.Context) (*domain.SchedulingConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
