package place_hold

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Request модель запроса на удержание слота
type Request struct {
	Date            time.Time        // Дата слота (без времени)
	StartTime       types.TimeString // Время начала слота
	DurationMinutes int              // Длительность работы в минутах
}

// Response модель ответа с токеном удержания
type Response struct {
	Token           string           // Токен для подтверждения или освобождения
	Date            time.Time        // Дата удержанного слота
	StartTime       types.TimeString // Время начала удержанного слота
	DurationMinutes int              // Длительность
	ResourceID      int64            // Предварительно выделенный ресурс
	ExpiresAt       time.Time        // Момент истечения удержания
}
