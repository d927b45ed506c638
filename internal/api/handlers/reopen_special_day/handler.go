package reopen_special_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	scheduleService "github.com/fleetbright/FB-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidID         = "некорректный идентификатор особого дня"
	msgSpecialDayMissing = "особый день не найден"
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

// Handle DELETE /api/v1/admin/special-days/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/special-days/{id} - Invalid id: %s", idStr)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeactivateSpecialDay(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSpecialDayNotFound):
			h.logger.Warn("DELETE /admin/special-days/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgSpecialDayMissing)

		default:
			h.logger.Error("DELETE /admin/special-days/{id} - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/special-days/{id} - Special day reopened: id=%d", id)
	handlers.RespondNoContent(w)
}
