package list_special_days

import (
	"errors"
	"net/http"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	scheduleService "github.com/fleetbright/FB-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidQuery = "некорректные параметры запроса, ожидается from и to в формате YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
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

// Handle GET /api/v1/admin/special-days?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/special-days - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	days, err := h.service.ListSpecialDays(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("GET /admin/special-days - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/special-days - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/special-days - Fetched %d special days", len(days.SpecialDays))
	handlers.RespondJSON(w, http.StatusOK, days)
}

func parseQuery(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to, nil
}
