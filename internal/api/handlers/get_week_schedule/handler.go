package get_week_schedule

import (
	"net/http"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	week, err := h.service.GetWeekSchedule(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/schedule - Week schedule fetched")
	handlers.RespondJSON(w, http.StatusOK, week)
}
