package schedule

import "errors"

var (
	// ErrSpecialDayNotFound возвращается, когда особый день не найден
	ErrSpecialDayNotFound = errors.New("special day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
