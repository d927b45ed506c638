package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	resourceRepo ResourceRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	resourceRepo ResourceRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		resourceRepo: resourceRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем конфигурацию планировщика
	config, err := uc.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
			return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		// Если конфигурация не найдена, используем дефолтные значения
		config = domain.DefaultSchedulingConfig()
		uc.logger.Info("GetAvailableSlots: using default scheduling config")
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Попутно чистим истекшие удержания
	if deleted, err := uc.holdRepo.DeleteExpired(ctx, now); err != nil {
		// Не критично для расчета - истекшие удержания отфильтруются лениво
		uc.logger.Warn("GetAvailableSlots: failed to sweep expired holds: %v", err)
	} else if deleted > 0 {
		uc.logger.Info("GetAvailableSlots: swept %d expired holds", deleted)
	}

	// 6. Получаем календарь: часы работы и особый день
	week, err := uc.scheduleRepo.GetWeekSchedule(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get week schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
	}

	special, err := uc.scheduleRepo.GetSpecialDay(ctx, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get special day: %v", err)
		return nil, fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
	}

	calendar := domain.Calendar{Week: *week}
	hours, open := calendar.HoursFor(req.Date, special)
	if !open {
		uc.logger.Info("GetAvailableSlots: closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 7. Получаем активные ресурсы
	resources, err := uc.resourceRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	if len(resources) == 0 {
		uc.logger.Warn("GetAvailableSlots: no active resources, nothing to offer")
		return &Response{
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 8. Генерируем кандидатов
	candidates, err := generateCandidateSlots(
		hours,
		config.SlotGranularityMinutes,
		req.DurationMinutes,
		req.Date,
		now,
		config.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	// 9. Получаем активные бронирования и неистекшие удержания на дату
	bookings, err := uc.bookingRepo.GetByDate(ctx, domain.BookingsFilter{
		Date:            &req.Date,
		IncludeInactive: false, // Только активные бронирования
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.GetActiveByDate(ctx, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	// 10. Фильтруем кандидатов по доступной емкости
	slots := filterAvailableSlots(
		candidates,
		req.DurationMinutes,
		bookings,
		holds,
		config.BufferMinutes,
		len(resources),
		now,
	)

	uc.logger.Info("GetAvailableSlots: %d of %d candidates available on %s",
		len(slots), len(candidates), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}
