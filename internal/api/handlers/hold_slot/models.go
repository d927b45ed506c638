package hold_slot

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	placeHold "github.com/fleetbright/FB-SchedulingService/internal/usecase/place_hold"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// HoldSlotRequest HTTP request model
type HoldSlotRequest struct {
	Date            string `json:"date"`      // "2026-08-31"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	Token           string `json:"token"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ExpiresAt       string `json:"expiresAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *HoldSlotRequest) ToUseCaseRequest() (*placeHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &placeHold.Request{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// ResourceID намеренно не раскрывается клиенту - распределение бригад
// внутренняя деталь планировщика
func FromUseCaseResponse(resp *placeHold.Response) *HoldResponse {
	return &HoldResponse{
		Token:           resp.Token,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ExpiresAt:       resp.ExpiresAt.Format(time.RFC3339),
	}
}
