package holds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	holdRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/hold"
)

// Service сервис для работы с удержаниями слотов
type Service struct {
	holdRepo     HoldRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса удержаний
func NewService(
	holdRepo HoldRepository,
	logger Logger,
) *Service {
	return &Service{
		holdRepo:     holdRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Release освобождает удержание по токену
// Операция идемпотентна: повторное освобождение или освобождение
// уже истекшего (удалённого) удержания не является ошибкой
func (s *Service) Release(ctx context.Context, token string) error {
	s.logger.Info("Release: releasing hold")

	if strings.TrimSpace(token) == "" {
		s.logger.Warn("Release: empty token")
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := s.holdRepo.DeleteByToken(ctx, token); err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			// Удержание уже освобождено, истекло или никогда не существовало -
			// результат с точки зрения клиента одинаковый
			s.logger.Info("Release: hold already gone, treating as success")
			return nil
		}
		s.logger.Error("Release: repository error: %v", err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: successfully released hold")
	return nil
}

// SweepExpired удаляет истекшие удержания
// Вызывается фоновой задачей по расписанию
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	deleted, err := s.holdRepo.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("SweepExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("SweepExpired: deleted %d expired holds", deleted)
	}

	return deleted, nil
}
