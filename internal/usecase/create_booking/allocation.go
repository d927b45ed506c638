package create_booking

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// allocateResource выбирает первый свободный ресурс для слота (first-fit)
// Ресурсы перебираются в порядке приоритета (priority_order ASC, id ASC),
// выбор детерминирован: при одинаковой занятости всегда выигрывает ресурс
// с меньшим приоритетом. Возвращает nil, если все ресурсы заняты
func allocateResource(
	start types.TimeString,
	durationMinutes int,
	resources []*domain.Resource,
	bookings []*domain.Booking,
	holds []*domain.Hold,
	bufferMinutes int,
	now time.Time,
) *domain.Resource {
	for _, resource := range resources {
		if resourceIsFree(resource.ID, start, durationMinutes, bookings, holds, bufferMinutes, now) {
			return resource
		}
	}
	return nil
}

// resourceIsFree проверяет, что ни одно активное бронирование и ни одно
// неистекшее удержание на этом ресурсе не конфликтует со слотом (с учетом буфера)
func resourceIsFree(
	resourceID int64,
	start types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
	holds []*domain.Hold,
	bufferMinutes int,
	now time.Time,
) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.ResourceID == nil || *b.ResourceID != resourceID {
			continue
		}
		if domain.Overlaps(start, durationMinutes, b.StartTime, b.DurationMinutes, bufferMinutes) {
			return false
		}
	}

	for _, h := range holds {
		if h.IsExpired(now) {
			continue
		}
		if h.ResourceID == nil || *h.ResourceID != resourceID {
			continue
		}
		if domain.Overlaps(start, durationMinutes, h.StartTime, h.DurationMinutes, bufferMinutes) {
			return false
		}
	}

	return true
}
