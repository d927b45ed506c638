package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	bookingsService "github.com/fleetbright/FB-SchedulingService/internal/service/bookings"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgInvalidInput    = "некорректный номер бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{reference} - Invalid reference")
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings/{reference} - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{reference} - Fetched booking id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
