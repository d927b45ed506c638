package get_schedule_config

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

// Handle GET /api/v1/admin/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/config - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/config - Config fetched")
	handlers.RespondJSON(w, http.StatusOK, config)
}
