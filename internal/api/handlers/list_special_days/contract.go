package list_special_days

import (
	"context"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSpecialDays(ctx context.Context, from, to time.Time) (*models.SpecialDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
