package hold_slot

import (
	"context"

	placeHold "github.com/fleetbright/FB-SchedulingService/internal/usecase/place_hold"
)

type PlaceHoldUseCase interface {
	Execute(ctx context.Context, req *placeHold.Request) (*placeHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
