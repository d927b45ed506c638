package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	getSlots "github.com/fleetbright/FB-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery   = "некорректные параметры запроса, ожидаются date=YYYY-MM-DD и durationMinutes"
	msgInvalidDate    = "некорректная дата"
	msgDateTooFar     = "дата слишком далеко в будущем"
	msgInvalidRequest = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD&durationMinutes=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := parseQuery(query.Get("date"), query.Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Invalid date: %s", query.Get("date"))
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Date too far in future: %s", query.Get("date"))
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /slots - Failed to get available slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Returned %d slots for date=%s", len(result.Slots), query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
