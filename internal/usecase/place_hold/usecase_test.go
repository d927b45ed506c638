package place_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeHoldRepo struct {
	holds   []*domain.Hold
	created *domain.Hold
}

func (f *fakeHoldRepo) Create(_ context.Context, hold *domain.Hold) (*domain.Hold, error) {
	created := *hold
	created.ID = 101
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeHoldRepo) GetActiveByDate(_ context.Context, _ time.Time, _ time.Time) ([]*domain.Hold, error) {
	return f.holds, nil
}

type fakeResourceRepo struct {
	resources []*domain.Resource
}

func (f *fakeResourceRepo) ListActive(_ context.Context) ([]*domain.Resource, error) {
	return f.resources, nil
}

type fakeScheduleRepo struct {
	week    *domain.WeekSchedule
	special *domain.SpecialDay
	config  *domain.SchedulingConfig
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context) (*domain.WeekSchedule, error) {
	return f.week, nil
}

func (f *fakeScheduleRepo) GetSpecialDay(_ context.Context, _ time.Time) (*domain.SpecialDay, error) {
	if f.special == nil {
		return nil, scheduleRepo.ErrSpecialDayNotFound
	}
	return f.special, nil
}

func (f *fakeScheduleRepo) GetConfig(_ context.Context) (*domain.SchedulingConfig, error) {
	if f.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.config, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubTokenGenerator struct {
	token string
}

func (g *stubTokenGenerator) Generate() string {
	return g.token
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

// Хелперы

func testWeek() *domain.WeekSchedule {
	open := domain.DayHours{Enabled: true, Open: "09:00", Close: "18:00"}
	return &domain.WeekSchedule{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  open,
		Sunday:    domain.DayHours{Enabled: false},
	}
}

func testConfig() *domain.SchedulingConfig {
	return &domain.SchedulingConfig{
		SlotGranularityMinutes:  30,
		BufferMinutes:           15,
		HoldTTLMinutes:          15,
		AdvanceBookingDays:      0,
		MinBookingNoticeMinutes: 0,
	}
}

func twoTrucks() []*domain.Resource {
	return []*domain.Resource{
		{ID: 1, IdentifierCode: "TRUCK-01", Active: true, PriorityOrder: 1},
		{ID: 2, IdentifierCode: "TRUCK-02", Active: true, PriorityOrder: 2},
	}
}

var (
	monday     = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sunday     = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	weekBefore = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
)

func newTestUseCase(
	bookings []*domain.Booking,
	holdRepo *fakeHoldRepo,
	resources []*domain.Resource,
	schedule *fakeScheduleRepo,
	now time.Time,
) *UseCase {
	return &UseCase{
		bookingRepo:  &fakeBookingRepo{bookings: bookings},
		holdRepo:     holdRepo,
		resourceRepo: &fakeResourceRepo{resources: resources},
		scheduleRepo: schedule,
		txManager:    &fakeTxManager{},
		tokenGen:     &stubTokenGenerator{token: "test-token"},
		timeProvider: &fixedTimeProvider{now: now},
		logger:       nopLogger{},
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	// Первая бригада свободна, first-fit выбирает её
	assert.Equal(t, int64(1), resp.ResourceID)
	// TTL отсчитывается от текущего момента
	assert.Equal(t, weekBefore.Add(15*time.Minute), resp.ExpiresAt)

	require.NotNil(t, holdRepo.created)
	assert.Equal(t, "test-token", holdRepo.created.Token)
}

func TestExecute_FirstFitSkipsBusyTruck(t *testing.T) {
	resourceID := int64(1)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &resourceID, Status: domain.StatusConfirmed},
	}
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(bookings, holdRepo, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ResourceID)
}

func TestExecute_AllTrucksBusy(t *testing.T) {
	r1, r2 := int64(1), int64(2)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &r1, Status: domain.StatusConfirmed},
	}
	holds := []*domain.Hold{
		{Token: "other", StartTime: "10:30", DurationMinutes: 60, ResourceID: &r2, ExpiresAt: weekBefore.Add(10 * time.Minute)},
	}
	holdRepo := &fakeHoldRepo{holds: holds}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(bookings, holdRepo, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	resourceID := int64(1)
	holds := []*domain.Hold{
		{Token: "stale", StartTime: "10:00", DurationMinutes: 60, ResourceID: &resourceID, ExpiresAt: weekBefore.Add(-time.Minute)},
	}
	holdRepo := &fakeHoldRepo{holds: holds}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holdRepo, twoTrucks()[:1], schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ResourceID)
}

func TestExecute_ClosedDay(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            sunday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecute_SpecialDayCloses(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{
		week:    testWeek(),
		config:  testConfig(),
		special: &domain.SpecialDay{Date: monday, Active: true, Category: domain.SpecialDayMaintenance},
	}
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, weekBefore)

	// Начало раньше открытия
	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "08:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	// Конец позже закрытия
	_, err = uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "17:30",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_TooSoonToday(t *testing.T) {
	cfg := testConfig()
	cfg.MinBookingNoticeMinutes = 120
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: cfg}

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, now)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "13:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrTooSoon)

	// Слот после минимального уведомления проходит
	resp, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "14:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
}

func TestExecute_PastDate(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, now)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	holdRepo := &fakeHoldRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holdRepo, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, StartTime: "25:00", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: monday, StartTime: "10:00", DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocateResource_Deterministic(t *testing.T) {
	resources := twoTrucks()

	// Обе бригады свободны - выигрывает приоритетная
	got := allocateResource("10:00", 60, resources, nil, nil, 15, weekBefore)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)

	// Бронирование без ресурса не блокирует ни одну бригаду
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: nil, Status: domain.StatusConfirmed},
	}
	got = allocateResource("10:00", 60, resources, bookings, nil, 15, weekBefore)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}
