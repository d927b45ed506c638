package place_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для временного удержания слота на время оформления заказа
type UseCase struct {
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	resourceRepo ResourceRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	tokenGen     TokenGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	resourceRepo ResourceRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		resourceRepo: resourceRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		tokenGen:     &UUIDTokenGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// UUIDTokenGenerator генерирует токены удержаний на основе UUID v4
type UUIDTokenGenerator struct{}

// Generate возвращает новый непредсказуемый токен
func (g *UUIDTokenGenerator) Generate() string {
	return uuid.NewString()
}

// Execute выполняет use case удержания слота
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlaceHold: date=%s, time=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Hold

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем конфигурацию планировщика
		config, err := uc.scheduleRepo.GetConfig(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("PlaceHold: failed to get config: %v", err)
				return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
			}
			config = domain.DefaultSchedulingConfig()
			uc.logger.Info("PlaceHold: using default scheduling config")
		}

		// 3.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("PlaceHold: date validation failed: %v", err)
			return err
		}

		// 3.3. Проверяем календарь: часы работы и особый день
		week, err := uc.scheduleRepo.GetWeekSchedule(txCtx)
		if err != nil {
			uc.logger.Error("PlaceHold: failed to get week schedule: %v", err)
			return fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
		}

		special, err := uc.scheduleRepo.GetSpecialDay(txCtx, req.Date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
			uc.logger.Error("PlaceHold: failed to get special day: %v", err)
			return fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
		}

		calendar := domain.Calendar{Week: *week}
		hours, open := calendar.HoursFor(req.Date, special)
		if !open {
			uc.logger.Warn("PlaceHold: closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClosed
		}

		// 3.4. Проверяем, что слот помещается в часы работы
		if err := validateWithinBusinessHours(req.StartTime, req.DurationMinutes, hours); err != nil {
			uc.logger.Warn("PlaceHold: business hours validation failed: %v", err)
			return err
		}

		// 3.5. Проверяем минимальное уведомление для сегодняшней даты
		if err := validateStartNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("PlaceHold: start notice validation failed: %v", err)
			return err
		}

		// 3.6. Получаем активные ресурсы
		resources, err := uc.resourceRepo.ListActive(txCtx)
		if err != nil {
			uc.logger.Error("PlaceHold: failed to list resources: %v", err)
			return fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}

		if len(resources) == 0 {
			uc.logger.Warn("PlaceHold: no active resources")
			return ErrSlotNotAvailable
		}

		// 3.7. Получаем бронирования и удержания на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDate(txCtx, domain.BookingsFilter{
			Date:            &req.Date,
			IncludeInactive: false, // Только активные бронирования
		})
		if err != nil {
			uc.logger.Error("PlaceHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		holds, err := uc.holdRepo.GetActiveByDate(txCtx, req.Date, now)
		if err != nil {
			uc.logger.Error("PlaceHold: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// 3.8. Выбираем свободный ресурс (first-fit по приоритету)
		resource := allocateResource(
			req.StartTime,
			req.DurationMinutes,
			resources,
			bookings,
			holds,
			config.BufferMinutes,
			now,
		)
		if resource == nil {
			uc.logger.Warn("PlaceHold: no free resource for %s %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("PlaceHold: allocated resource id=%d (%s)", resource.ID, resource.IdentifierCode)

		// 3.9. Создаем удержание
		hold := &domain.Hold{
			Token:           uc.tokenGen.Generate(),
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			ResourceID:      &resource.ID,
			ExpiresAt:       now.Add(config.HoldTTL()),
		}

		created, err := uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			uc.logger.Error("PlaceHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PlaceHold: successfully placed hold id=%d, expires_at=%s",
		result.ID, result.ExpiresAt.Format("15:04:05"))

	return &Response{
		Token:           result.Token,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		ResourceID:      *result.ResourceID,
		ExpiresAt:       result.ExpiresAt,
	}, nil
}
