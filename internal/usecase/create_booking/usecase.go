package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	bookingRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/booking"
	holdRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/hold"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
	catalogClient "github.com/fleetbright/FB-SchedulingService/internal/integrations/catalogservice"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	holdRepo      HoldRepository
	resourceRepo  ResourceRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	holdRepository HoldRepository,
	resourceRepo ResourceRepository,
	scheduleRepository ScheduleRepository,
	catalogServiceClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepository,
		holdRepo:      holdRepository,
		resourceRepo:  resourceRepo,
		scheduleRepo:  scheduleRepository,
		catalogClient: catalogServiceClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка конфликтов, выбор ресурса и вставка происходят атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, service=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Рассчитываем цену и длительность через каталог (вне транзакции)
	quote, err := uc.catalogClient.GetQuoteWithGracefulDegradation(ctx, req.ServiceID, req.ExtraIDs, req.SquareMeters)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found in catalog", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrServiceDegraded) {
			uc.logger.Error("CreateBooking: catalog unavailable: %v", err)
			return nil, ErrCatalogUnavailable
		}
		uc.logger.Error("CreateBooking: failed to get quote: %v", err)
		return nil, fmt.Errorf("%w: failed to get quote: %v", ErrInternal, err)
	}

	if err := validateDuration(quote.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: quoted duration validation failed: %v", err)
		return nil, err
	}

	// 4. Выполняем операции с БД в сериализуемой транзакции.
	// Коллизия номера бронирования прерывает транзакцию в Postgres,
	// поэтому повтор с новым номером идет новым раундом целиком
	var result *domain.Booking
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		result, err = uc.runBookingRound(ctx, req, quote, now)
		if err == nil || !errors.Is(err, bookingRepo.ErrDuplicateReference) {
			break
		}
	}
	if errors.Is(err, bookingRepo.ErrDuplicateReference) {
		uc.logger.Error("CreateBooking: exhausted %d reference attempts", maxReferenceAttempts)
		return nil, fmt.Errorf("%w: failed to generate unique reference", ErrInternal)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		ResourceID:      result.ResourceID,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// runBookingRound выполняет один раунд сериализуемой транзакции:
// календарь, конфликты, выбор ресурса и вставка бронирования
func (uc *UseCase) runBookingRound(ctx context.Context, req *Request, quote *catalogClient.Quote, now time.Time) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем конфигурацию планировщика
		config, err := uc.scheduleRepo.GetConfig(txCtx)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateBooking: failed to get config: %v", err)
				return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
			}
			config = domain.DefaultSchedulingConfig()
			uc.logger.Info("CreateBooking: using default scheduling config")
		}

		// 4.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 4.3. Проверяем календарь: часы работы и особый день
		week, err := uc.scheduleRepo.GetWeekSchedule(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get week schedule: %v", err)
			return fmt.Errorf("%w: failed to get week schedule: %v", ErrInternal, err)
		}

		special, err := uc.scheduleRepo.GetSpecialDay(txCtx, req.Date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
			uc.logger.Error("CreateBooking: failed to get special day: %v", err)
			return fmt.Errorf("%w: failed to get special day: %v", ErrInternal, err)
		}

		calendar := domain.Calendar{Week: *week}
		hours, open := calendar.HoursFor(req.Date, special)
		if !open {
			uc.logger.Warn("CreateBooking: closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClosed
		}

		// 4.4. Проверяем, что слот помещается в часы работы
		if err := validateWithinBusinessHours(req.StartTime, quote.DurationMinutes, hours); err != nil {
			uc.logger.Warn("CreateBooking: business hours validation failed: %v", err)
			return err
		}

		// 4.5. Проверяем минимальное уведомление для сегодняшней даты
		if err := validateStartNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: start notice validation failed: %v", err)
			return err
		}

		// 4.6. Если передан токен удержания - проверяем и потребляем его
		var consumedHold *domain.Hold
		if req.HoldToken != nil {
			consumedHold, err = uc.consumeHold(txCtx, *req.HoldToken, req, now)
			if err != nil {
				return err
			}
		}

		// 4.7. Получаем активные ресурсы
		resources, err := uc.resourceRepo.ListActive(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list resources: %v", err)
			return fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}

		if len(resources) == 0 {
			uc.logger.Warn("CreateBooking: no active resources")
			return ErrSlotNotAvailable
		}

		// 4.8. Получаем бронирования и удержания на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDate(txCtx, domain.BookingsFilter{
			Date:            &req.Date,
			IncludeInactive: false, // Только активные бронирования
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		holds, err := uc.holdRepo.GetActiveByDate(txCtx, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// Собственное удержание уже потреблено и не должно блокировать слот
		if consumedHold != nil {
			holds = excludeHold(holds, consumedHold.Token)
		}

		// 4.9. Выбираем ресурс: удержание закрепило конкретный, иначе first-fit.
		// Конфликты перепроверяем в любом случае - удержание могло пережить
		// смену конфигурации или деактивацию ресурса
		resource := pickResource(
			consumedHold,
			req.StartTime,
			quote.DurationMinutes,
			resources,
			bookings,
			holds,
			config.BufferMinutes,
			now,
		)
		if resource == nil {
			uc.logger.Warn("CreateBooking: no free resource for %s %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: allocated resource id=%d (%s)", resource.ID, resource.IdentifierCode)

		// 4.10. Создаем бронирование с денормализацией данных каталога.
		// Номер генерируется заново на каждом раунде, коллизия
		// пробрасывается наружу для повтора
		reference, err := generateReference(req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate reference: %v", err)
			return fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			Reference:       reference,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: quote.DurationMinutes,
			ResourceID:      &resource.ID,
			// Подтверждение оплаты переводит бронирование из pending дальше
			Status: domain.StatusPending,
			// Денормализация данных услуги
			ServiceName: quote.ServiceName,
			TotalPrice:  quote.Price,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateReference) {
				uc.logger.Warn("CreateBooking: reference collision on %s, retrying", reference)
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// consumeHold проверяет удержание по токену и удаляет его
// Удержание должно быть неистекшим и соответствовать запрошенному слоту
func (uc *UseCase) consumeHold(ctx context.Context, token string, req *Request, now time.Time) (*domain.Hold, error) {
	hold, err := uc.holdRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			uc.logger.Warn("CreateBooking: hold token not found")
			return nil, ErrHoldNotFound
		}
		uc.logger.Error("CreateBooking: failed to get hold: %v", err)
		return nil, fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
	}

	if hold.IsExpired(now) {
		uc.logger.Warn("CreateBooking: hold id=%d expired at %s", hold.ID, hold.ExpiresAt.Format("15:04:05"))
		// Удаляем истекшее удержание, не дожидаясь фоновой чистки
		if delErr := uc.holdRepo.DeleteByToken(ctx, token); delErr != nil && !errors.Is(delErr, holdRepo.ErrHoldNotFound) {
			uc.logger.Error("CreateBooking: failed to delete expired hold: %v", delErr)
		}
		return nil, ErrHoldExpired
	}

	if !isSameDay(hold.Date, req.Date) || hold.StartTime != req.StartTime {
		uc.logger.Warn("CreateBooking: hold id=%d does not match requested slot %s %s",
			hold.ID, req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrHoldMismatch
	}

	// Потребляем удержание: слот освобождается для нашего же бронирования
	if err := uc.holdRepo.DeleteByToken(ctx, token); err != nil && !errors.Is(err, holdRepo.ErrHoldNotFound) {
		uc.logger.Error("CreateBooking: failed to consume hold: %v", err)
		return nil, fmt.Errorf("%w: failed to consume hold: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: consumed hold id=%d", hold.ID)
	return hold, nil
}

// excludeHold возвращает удержания без указанного токена
func excludeHold(holds []*domain.Hold, token string) []*domain.Hold {
	result := make([]*domain.Hold, 0, len(holds))
	for _, h := range holds {
		if h.Token == token {
			continue
		}
		result = append(result, h)
	}
	return result
}

// pickResource выбирает ресурс для бронирования
// Если удержание закрепило ресурс и он все еще свободен - используем его,
// иначе откатываемся на first-fit по приоритету
func pickResource(
	consumedHold *domain.Hold,
	start types.TimeString,
	durationMinutes int,
	resources []*domain.Resource,
	bookings []*domain.Booking,
	holds []*domain.Hold,
	bufferMinutes int,
	now time.Time,
) *domain.Resource {
	if consumedHold != nil && consumedHold.ResourceID != nil {
		for _, resource := range resources {
			if resource.ID != *consumedHold.ResourceID {
				continue
			}
			if resourceIsFree(resource.ID, start, durationMinutes, bookings, holds, bufferMinutes, now) {
				return resource
			}
			break
		}
	}

	return allocateResource(start, durationMinutes, resources, bookings, holds, bufferMinutes, now)
}
