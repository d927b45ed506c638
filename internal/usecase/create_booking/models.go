package create_booking

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	HoldToken *string // Токен удержания, если клиент прошел через hold-slot (опционально)

	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала

	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone *string // Телефон клиента (опционально)

	ServiceID    int64   // ID услуги в каталоге
	ExtraIDs     []int64 // Дополнительные услуги (опционально)
	SquareMeters float64 // Площадь помещения для расчета цены (опционально)

	Notes *string // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID бронирования
	Reference       string           // Внешний номер бронирования, например "FB-20260831-X7K2QD"
	CustomerName    string           // Имя клиента
	CustomerEmail   string           // Email клиента
	CustomerPhone   *string          // Телефон клиента
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность из расчета каталога
	ResourceID      *int64           // Назначенный ресурс
	Status          string           // Статус бронирования
	ServiceName     string           // Название услуги (денормализация)
	TotalPrice      float64          // Итоговая цена (денормализация)
	Notes           *string          // Заметки клиента
	CreatedAt       time.Time        // Момент создания
	UpdatedAt       time.Time        // Момент последнего обновления
}
