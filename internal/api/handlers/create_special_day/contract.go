package create_special_day

import (
	"context"

	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateSpecialDay(ctx context.Context, req *models.CreateSpecialDayRequest) (*models.SpecialDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
