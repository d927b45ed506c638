package create_special_day

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

// CreateSpecialDayRequest запрос на закрытие даты в формате API
type CreateSpecialDayRequest struct {
	Date     string `json:"date"` // "2026-08-31"
	Reason   string `json:"reason"`
	Category string `json:"category"` // holiday | maintenance | custom
}

// ToServiceRequest конвертирует API запрос в модель сервиса
func (r *CreateSpecialDayRequest) ToServiceRequest() (*models.CreateSpecialDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateSpecialDayRequest{
		Date:     date,
		Reason:   r.Reason,
		Category: r.Category,
	}, nil
}
