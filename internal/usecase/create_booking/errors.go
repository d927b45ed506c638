package create_booking

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

	// ErrHoldNotFound возвращается, когда переданный токен удержания не существует
	ErrHoldNotFound = errors.New("hold not found")

	// ErrHoldExpired возвращается, когда удержание по токену уже истекло
	ErrHoldExpired = errors.New("hold has expired")

	// ErrHoldMismatch возвращается, когда удержание не соответствует запрошенному слоту
	ErrHoldMismatch = errors.New("hold does not match requested slot")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrCatalogUnavailable возвращается, когда каталог недоступен и цену рассчитать нельзя
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
