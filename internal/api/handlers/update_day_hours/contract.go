package update_day_hours

import (
	"context"

	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateDayHours(ctx context.Context, req *models.UpdateDayHoursRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
