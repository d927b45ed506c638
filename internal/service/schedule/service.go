package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
	"github.com/fleetbright/FB-SchedulingService/internal/service/schedule/models"
)

// Service сервис для управления расписанием: часы работы,
// особые дни и параметры планировщика
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetWeekSchedule получает часы работы на всю неделю
func (s *Service) GetWeekSchedule(ctx context.Context) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetWeekSchedule: fetching week schedule")

	week, err := s.scheduleRepo.GetWeekSchedule(ctx)
	if err != nil {
		s.logger.Error("GetWeekSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeekSchedule(week), nil
}

// UpdateDayHours обновляет часы работы дня недели
func (s *Service) UpdateDayHours(ctx context.Context, req *models.UpdateDayHoursRequest) error {
	s.logger.Info("UpdateDayHours: updating %s, enabled=%v", req.Weekday, req.Enabled)

	weekday, err := models.ToDomainWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("UpdateDayHours: invalid weekday=%s", req.Weekday)
		return fmt.Errorf("%w: invalid weekday", ErrInvalidInput)
	}

	hours, err := req.ToDomainDayHours()
	if err != nil {
		s.logger.Warn("UpdateDayHours: invalid hours for %s: %v", req.Weekday, err)
		return fmt.Errorf("%w: invalid hours: %v", ErrInvalidInput, err)
	}

	// Открытие должно быть строго раньше закрытия
	if hours.Enabled && !hours.Open.IsBefore(hours.Close) {
		s.logger.Warn("UpdateDayHours: open=%s is not before close=%s", hours.Open, hours.Close)
		return fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}

	if err := s.scheduleRepo.UpdateDayHours(ctx, weekday, hours); err != nil {
		s.logger.Error("UpdateDayHours: repository error: %v", err)
		return fmt.Errorf("%w: UpdateDayHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDayHours: successfully updated %s", req.Weekday)
	return nil
}

// CreateSpecialDay закрывает дату для бронирования
func (s *Service) CreateSpecialDay(ctx context.Context, req *models.CreateSpecialDayRequest) (*models.SpecialDayResponse, error) {
	s.logger.Info("CreateSpecialDay: closing date=%s, category=%s",
		req.Date.Format(domain.DateFormat), req.Category)

	if req.Date.IsZero() {
		s.logger.Warn("CreateSpecialDay: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Reason) == "" {
		s.logger.Warn("CreateSpecialDay: reason is required")
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	category, err := models.ToDomainCategory(req.Category)
	if err != nil {
		s.logger.Warn("CreateSpecialDay: invalid category=%s", req.Category)
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	day := &domain.SpecialDay{
		Date:     req.Date,
		Reason:   req.Reason,
		Category: category,
		Active:   true,
	}

	created, err := s.scheduleRepo.CreateSpecialDay(ctx, day)
	if err != nil {
		s.logger.Error("CreateSpecialDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecialDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpecialDay: successfully closed %s, id=%d",
		created.Date.Format(domain.DateFormat), created.ID)
	return models.FromDomainSpecialDay(created), nil
}

// ListSpecialDays получает закрытые даты в диапазоне
func (s *Service) ListSpecialDays(ctx context.Context, from, to time.Time) (*models.SpecialDayListResponse, error) {
	s.logger.Info("ListSpecialDays: from=%s, to=%s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	days, err := s.scheduleRepo.ListSpecialDays(ctx, from, to)
	if err != nil {
		s.logger.Error("ListSpecialDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecialDays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSpecialDays: fetched %d special days", len(days))
	return models.FromDomainSpecialDayList(days), nil
}

// DeactivateSpecialDay снимает закрытие с даты
// Существующие бронирования дата-закрытие не трогает, поэтому
// повторное открытие безопасно
func (s *Service) DeactivateSpecialDay(ctx context.Context, id int64) error {
	s.logger.Info("DeactivateSpecialDay: reopening special day id=%d", id)

	if err := s.scheduleRepo.DeactivateSpecialDay(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrSpecialDayNotFound) {
			s.logger.Warn("DeactivateSpecialDay: special day id=%d not found", id)
			return ErrSpecialDayNotFound
		}
		s.logger.Error("DeactivateSpecialDay: repository error: %v", err)
		return fmt.Errorf("%w: DeactivateSpecialDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateSpecialDay: successfully reopened special day id=%d", id)
	return nil
}

// GetConfig получает параметры планировщика
// Если строка конфигурации еще не создана, возвращает значения по умолчанию
func (s *Service) GetConfig(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching scheduling config")

	config, err := s.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: no config persisted, returning defaults")
			return models.FromDomainConfig(domain.DefaultSchedulingConfig()), nil
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// UpdateConfig обновляет параметры планировщика
// Обновляются только переданные поля, остальные сохраняют текущие значения
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating scheduling config")

	// Берем текущую конфигурацию как основу для частичного обновления
	config, err := s.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateConfig: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
		}
		config = domain.DefaultSchedulingConfig()
	}

	if req.SlotGranularityMinutes != nil {
		config.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}
	if req.BufferMinutes != nil {
		config.BufferMinutes = *req.BufferMinutes
	}
	if req.HoldTTLMinutes != nil {
		config.HoldTTLMinutes = *req.HoldTTLMinutes
	}
	if req.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	if req.MinBookingNoticeMinutes != nil {
		config.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
	}

	if err := s.validateConfig(config); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.scheduleRepo.UpdateConfig(ctx, config)
	if err != nil {
		s.logger.Error("UpdateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated scheduling config")
	return models.FromDomainConfig(updated), nil
}

// validateConfig проверяет бизнес-ограничения параметров планировщика
func (s *Service) validateConfig(config *domain.SchedulingConfig) error {
	if config.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		config.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if config.BufferMinutes < domain.MinBufferMinutes ||
		config.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if config.HoldTTLMinutes < domain.MinHoldTTLMinutes ||
		config.HoldTTLMinutes > domain.MaxHoldTTLMinutes {
		return fmt.Errorf("%w: holdTtlMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinHoldTTLMinutes, domain.MaxHoldTTLMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if config.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: minBookingNoticeMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}
