package get_available_slots

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
	holds []*domain.Hold
}

func (f *fakeHoldRepo) GetActiveByDate(_ context.Context, _ time.Time, _ time.Time) ([]*domain.Hold, error) {
	return f.holds, nil
}

func (f *fakeHoldRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
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

func newTestUseCase(
	bookings []*domain.Booking,
	holds []*domain.Hold,
	resources []*domain.Resource,
	schedule *fakeScheduleRepo,
	now time.Time,
) *UseCase {
	return &UseCase{
		bookingRepo:  &fakeBookingRepo{bookings: bookings},
		holdRepo:     &fakeHoldRepo{holds: holds},
		resourceRepo: &fakeResourceRepo{resources: resources},
		scheduleRepo: schedule,
		timeProvider: &fixedTimeProvider{now: now},
		logger:       nopLogger{},
	}
}

var (
	monday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	// За неделю до запрошенной даты, чтобы не задевать фильтр "сегодня"
	weekBefore = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
)

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

// Тесты

func TestExecute_EmptyDay(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	// 09:00 .. 17:00 с шагом 30 минут (работа должна завершиться к 18:00)
	assert.Len(t, resp.Slots, 17)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Equal(t, "09:00 - 10:00", resp.Slots[0].Label)
}

func TestExecute_BookingBlocksSlots_SingleTruck(t *testing.T) {
	resourceID := int64(1)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &resourceID, Status: domain.StatusConfirmed},
	}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(bookings, nil, twoTrucks()[:1], schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	// С буфером 15 минут блокируются кандидаты с 09:00 по 11:00
	assert.NotContains(t, starts, types.TimeString("09:00"))
	assert.NotContains(t, starts, types.TimeString("10:00"))
	assert.NotContains(t, starts, types.TimeString("11:00"))
	assert.Contains(t, starts, types.TimeString("11:30"))
	assert.Len(t, resp.Slots, 12)
}

func TestExecute_SecondTruckKeepsSlotsOpen(t *testing.T) {
	resourceID := int64(1)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &resourceID, Status: domain.StatusConfirmed},
	}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(bookings, nil, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	// Вторая бригада свободна, все кандидаты остаются доступными
	assert.Len(t, resp.Slots, 17)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	resourceID := int64(1)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &resourceID, Status: domain.StatusCancelled},
	}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(bookings, nil, twoTrucks()[:1], schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
}

func TestExecute_ActiveHoldBlocks_ExpiredHoldIgnored(t *testing.T) {
	resourceID := int64(1)
	holds := []*domain.Hold{
		{StartTime: "14:00", DurationMinutes: 60, ResourceID: &resourceID, ExpiresAt: weekBefore.Add(10 * time.Minute)},
		{StartTime: "09:00", DurationMinutes: 60, ResourceID: &resourceID, ExpiresAt: weekBefore.Add(-time.Minute)},
	}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, holds, twoTrucks()[:1], schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	// Неистекшее удержание блокирует слот, истекшее - нет
	assert.NotContains(t, starts, types.TimeString("14:00"))
	assert.Contains(t, starts, types.TimeString("09:00"))
}

func TestExecute_ClosedWeekday(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecialDayCloses(t *testing.T) {
	schedule := &fakeScheduleRepo{
		week:    testWeek(),
		config:  testConfig(),
		special: &domain.SpecialDay{Date: monday, Active: true, Category: domain.SpecialDayHoliday},
	}
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoActiveResources(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, nil, nil, schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultConfigWhenNotPersisted(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek()} // config отсутствует
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)
	// Дефолтная гранулярность 30 минут даёт те же 17 кандидатов
	assert.Len(t, resp.Slots, 17)
}

func TestExecute_TodayMinNoticeFilter(t *testing.T) {
	cfg := testConfig()
	cfg.MinBookingNoticeMinutes = 60
	schedule := &fakeScheduleRepo{week: testWeek(), config: cfg}

	// Сегодня понедельник, 12:00
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, types.TimeString("12:30"))
	assert.Contains(t, starts, types.TimeString("13:00"))
	assert.Equal(t, types.TimeString("13:00"), starts[0])
}

func TestExecute_PastDate(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, now)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	cfg := testConfig()
	cfg.AdvanceBookingDays = 3
	schedule := &fakeScheduleRepo{week: testWeek(), config: cfg}
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	uc := newTestUseCase(nil, nil, twoTrucks(), schedule, weekBefore)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: domain.MaxDurationMinutes + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateCandidateSlots_DurationMustFitBeforeClose(t *testing.T) {
	hours := domain.DayHours{Enabled: true, Open: "09:00", Close: "12:00"}

	candidates, err := generateCandidateSlots(hours, 30, 120, monday, weekBefore, 0)
	require.NoError(t, err)

	// Работа на 2 часа должна завершиться к 12:00: последний кандидат 10:00
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, candidates)
}
