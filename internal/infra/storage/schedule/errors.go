package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда строка конфигурации расписания отсутствует
	// Вызывающая сторона подставляет значения по умолчанию
	ErrConfigNotFound = errors.New("schedule.repository: scheduling config not found")

	// ErrSpecialDayNotFound возвращается, когда особый день не найден
	ErrSpecialDayNotFound = errors.New("schedule.repository: special day not found")

	// ErrDayHoursNotFound возвращается, когда расписание на день недели отсутствует
	ErrDayHoursNotFound = errors.New("schedule.repository: day hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
