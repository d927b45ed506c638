package hold_slot

import (
	"errors"
	"net/http"

	"github.com/fleetbright/FB-SchedulingService/internal/api/handlers"
	placeHold "github.com/fleetbright/FB-SchedulingService/internal/usecase/place_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидаются YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgClosed             = "сервис не работает в выбранную дату"
	msgOutsideHours       = "слот выходит за часы работы"
	msgTooSoon            = "слишком поздно для бронирования этого слота"
	msgInvalidDate        = "некорректная дата"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase PlaceHoldUseCase
	logger  Logger
}

func NewHandler(useCase PlaceHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req HoldSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, placeHold.ErrSlotNotAvailable):
			h.logger.Warn("POST /holds - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, placeHold.ErrClosed):
			h.logger.Warn("POST /holds - Closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosed)

		case errors.Is(err, placeHold.ErrOutsideBusinessHours):
			h.logger.Warn("POST /holds - Outside business hours: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, placeHold.ErrTooSoon):
			h.logger.Warn("POST /holds - Too soon: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooSoon)

		case errors.Is(err, placeHold.ErrInvalidDate):
			h.logger.Warn("POST /holds - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, placeHold.ErrDateTooFarInFuture):
			h.logger.Warn("POST /holds - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, placeHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /holds - Failed to place hold: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold placed successfully: date=%s, time=%s", req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
