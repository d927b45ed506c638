package holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	holdRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/hold"
)

type fakeHoldRepo struct {
	tokens map[string]struct{}

	deleteExpiredCount int64
	deleteExpiredErr   error
	sweptAt            *time.Time
}

func (f *fakeHoldRepo) DeleteByToken(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return holdRepo.ErrHoldNotFound
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeHoldRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.sweptAt = &now
	return f.deleteExpiredCount, f.deleteExpiredErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRelease(t *testing.T) {
	repo := &fakeHoldRepo{tokens: map[string]struct{}{"held": {}}}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Release(context.Background(), "held"))

	// Повторное освобождение идемпотентно
	require.NoError(t, svc.Release(context.Background(), "held"))

	// Несуществующий токен тоже не ошибка
	require.NoError(t, svc.Release(context.Background(), "never-existed"))
}

func TestRelease_EmptyToken(t *testing.T) {
	svc := NewService(&fakeHoldRepo{}, nopLogger{})

	err := svc.Release(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSweepExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeHoldRepo{deleteExpiredCount: 3}
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	deleted, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.NotNil(t, repo.sweptAt)
	assert.Equal(t, now, *repo.sweptAt)
}

func TestSweepExpired_RepositoryError(t *testing.T) {
	repo := &fakeHoldRepo{deleteExpiredErr: errors.New("connection lost")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.SweepExpired(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
