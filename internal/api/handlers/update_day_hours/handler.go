package update_day_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	scheduleService "github.com/fleetbright/FB-SchedulingService/internal/service/schedule"
	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные часы работы"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	weekday := mux.Vars(r)["weekday"]

	var req models.UpdateDayHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Weekday = weekday

	if err := h.service.UpdateDayHours(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/schedule/{weekday} - Invalid input: weekday=%s, %v", weekday, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/schedule/{weekday} - Failed: weekday=%s, error=%v", weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/{weekday} - Day hours updated: weekday=%s", weekday)
	handlers.RespondNoContent(w)
}
