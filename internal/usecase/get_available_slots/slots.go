package get_available_slots

import (
	"fmt"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// generateCandidateSlots генерирует все потенциальные времена начала работы на день
// Кандидаты идут от открытия с фиксированным шагом granularity; кандидат отбрасывается,
// если работа (durationMinutes) не успевает завершиться до закрытия.
// Для сегодняшней даты дополнительно фильтруем по текущему времени и minBookingNoticeMinutes
func generateCandidateSlots(
	hours domain.DayHours,
	granularityMinutes int,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	// Шаг 1: Генерируем ВСЕ кандидаты от открытия до закрытия с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	currentSlot := hours.Open

	for currentSlot.IsBefore(hours.Close) {
		// Проверяем, что работа успевает завершиться до закрытия
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			// Работа пересекает конец суток - дальше только хуже, останавливаемся
			break
		}
		if slotEnd.IsAfter(hours.Close) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: Если дата запроса НЕ сегодня - возвращаем всех кандидатов
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: Если дата запроса - сегодня, фильтруем кандидатов по времени
	// Вычисляем минимальное допустимое время начала
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// До конца суток уже не набирается minNotice - сегодня слотов нет
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// filterAvailableSlots оставляет кандидатов, на которых хватает свободных ресурсов
// Кандидат доступен, если число конфликтующих (с учетом буфера) активных бронирований
// и неистекших удержаний строго меньше числа активных ресурсов
func filterAvailableSlots(
	candidates []types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
	holds []*domain.Hold,
	bufferMinutes int,
	resourceCount int,
	now time.Time,
) []Slot {
	result := make([]Slot, 0, len(candidates))

	for _, slotStart := range candidates {
		conflicts := domain.BookingConflicts(slotStart, durationMinutes, bookings, bufferMinutes) +
			domain.HoldConflicts(slotStart, durationMinutes, holds, bufferMinutes, now)

		if conflicts >= resourceCount {
			continue
		}

		result = append(result, Slot{
			StartTime:       slotStart,
			DurationMinutes: durationMinutes,
			Label:           slotLabel(slotStart, durationMinutes),
		})
	}

	return result
}

// slotLabel строит человекочитаемую подпись слота вида "10:00 - 11:00"
func slotLabel(start types.TimeString, durationMinutes int) string {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return start.String()
	}
	return fmt.Sprintf("%s - %s", start, end)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
