package create_special_day

import (
	"errors"
	"net/http"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	scheduleService "github.com/fleetbright/FB-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры особого дня"
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

// Handle POST /api/v1/admin/special-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSpecialDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/special-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/special-days - Invalid date: date=%s, %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.CreateSpecialDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /admin/special-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/special-days - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/special-days - Special day created: id=%d, date=%s", day.ID, day.Date)
	handlers.RespondJSON(w, http.StatusCreated, day)
}
