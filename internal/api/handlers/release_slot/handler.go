package release_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	holdsService "github.com/fleetbright/FB-SchedulingService/internal/service/holds"
)

const (
	msgInvalidToken = "некорректный токен удержания"
)

type Handler struct {
	service HoldsService
	logger  Logger
}

func NewHandler(service HoldsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds/{token}
// Операция идемпотентна: освобождение несуществующего или истекшего
// удержания тоже возвращает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.service.Release(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, holdsService.ErrInvalidInput):
			h.logger.Warn("DELETE /holds - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("DELETE /holds - Failed to release hold: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holds - Hold released")
	handlers.RespondNoContent(w)
}
