package place_hold

import "errors"

var (
	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrClosed возвращается, когда в указанную дату сервис не работает
	ErrClosed = errors.New("closed on this date")

	// ErrOutsideBusinessHours возвращается, когда слот не помещается в часы работы
	ErrOutsideBusinessHours = errors.New("slot is outside business hours")

	// ErrTooSoon возвращается, когда слот начинается раньше минимального уведомления
	ErrTooSoon = errors.New("slot starts too soon")

	// ErrSlotNotAvailable возвращается, когда на слот не осталось свободных ресурсов
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
