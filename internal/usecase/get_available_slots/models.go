package get_available_slots

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность работы в минутах
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность, для которой считалась доступность
	Slots           []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Label           string           // Человекочитаемая подпись, например "10:00 - 11:00"
}
