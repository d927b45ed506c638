package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	bookingRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/booking"
	holdRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/hold"
	scheduleRepo "github.com/fleetbright/FB-SchedulingService/internal/infra/storage/schedule"
	"github.com/fleetbright/FB-SchedulingService/internal/integrations/catalogservice"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	bookings []*domain.Booking

	created        *domain.Booking
	createAttempts int
	duplicateFirst int // сколько первых попыток Create вернут коллизию номера
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createAttempts++
	if f.createAttempts <= f.duplicateFirst {
		return nil, bookingRepo.ErrDuplicateReference
	}

	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeHoldRepo struct {
	holds  []*domain.Hold
	byToken map[string]*domain.Hold

	deletedTokens []string
}

func (f *fakeHoldRepo) GetByToken(_ context.Context, token string) (*domain.Hold, error) {
	hold, ok := f.byToken[token]
	if !ok {
		return nil, holdRepo.ErrHoldNotFound
	}
	return hold, nil
}

func (f *fakeHoldRepo) GetActiveByDate(_ context.Context, _ time.Time, now time.Time) ([]*domain.Hold, error) {
	active := make([]*domain.Hold, 0, len(f.holds))
	for _, h := range f.holds {
		if !h.IsExpired(now) {
			active = append(active, h)
		}
	}
	return active, nil
}

func (f *fakeHoldRepo) DeleteByToken(_ context.Context, token string) error {
	if _, ok := f.byToken[token]; !ok {
		return holdRepo.ErrHoldNotFound
	}
	delete(f.byToken, token)
	f.deletedTokens = append(f.deletedTokens, token)
	return nil
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

type fakeCatalogClient struct {
	quote *catalogservice.Quote
	err   error
}

func (f *fakeCatalogClient) GetQuoteWithGracefulDegradation(_ context.Context, _ int64, _ []int64, _ float64) (*catalogservice.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

type fakeTxManager struct {
	rounds int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.rounds++
	return fn(ctx)
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

func testQuote() *catalogservice.Quote {
	return &catalogservice.Quote{
		ServiceID:       7,
		ServiceName:     "Генеральная уборка",
		Price:           4500,
		DurationMinutes: 120,
	}
}

var (
	monday     = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	weekBefore = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
)

func validRequest() *Request {
	return &Request{
		Date:          monday,
		StartTime:     "10:00",
		CustomerName:  "Анна Петрова",
		CustomerEmail: "anna@example.com",
		ServiceID:     7,
	}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	holds *fakeHoldRepo,
	resources []*domain.Resource,
	schedule *fakeScheduleRepo,
	catalog *fakeCatalogClient,
	now time.Time,
) *UseCase {
	if holds.byToken == nil {
		holds.byToken = map[string]*domain.Hold{}
	}
	return &UseCase{
		bookingRepo:   bookings,
		holdRepo:      holds,
		resourceRepo:  &fakeResourceRepo{resources: resources},
		scheduleRepo:  schedule,
		catalogClient: catalog,
		txManager:     &fakeTxManager{},
		timeProvider:  &fixedTimeProvider{now: now},
		logger:        nopLogger{},
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.True(t, strings.HasPrefix(resp.Reference, "FB-20260831-"), "reference %s", resp.Reference)
	// Новое бронирование ждет подтверждения оплаты
	assert.Equal(t, "pending", resp.Status)
	// Длительность берется из расчета каталога, не от клиента
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, "Генеральная уборка", resp.ServiceName)
	assert.Equal(t, float64(4500), resp.TotalPrice)
	require.NotNil(t, resp.ResourceID)
	assert.Equal(t, int64(1), *resp.ResourceID)
}

func TestExecute_ConsumesHold(t *testing.T) {
	resourceID := int64(2)
	hold := &domain.Hold{
		ID:              5,
		Token:           "held",
		Date:            monday,
		StartTime:       "10:00",
		DurationMinutes: 120,
		ResourceID:      &resourceID,
		ExpiresAt:       weekBefore.Add(10 * time.Minute),
	}
	holds := &fakeHoldRepo{
		holds:   []*domain.Hold{hold},
		byToken: map[string]*domain.Hold{"held": hold},
	}
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, holds, twoTrucks(), schedule, catalog, weekBefore)

	req := validRequest()
	token := "held"
	req.HoldToken = &token

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Удержание потреблено и закрепленная бригада сохранена
	assert.Contains(t, holds.deletedTokens, "held")
	require.NotNil(t, resp.ResourceID)
	assert.Equal(t, int64(2), *resp.ResourceID)
}

func TestExecute_HoldNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	req := validRequest()
	token := "missing"
	req.HoldToken = &token

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestExecute_HoldExpired(t *testing.T) {
	hold := &domain.Hold{
		ID:        5,
		Token:     "stale",
		Date:      monday,
		StartTime: "10:00",
		ExpiresAt: weekBefore.Add(-time.Minute),
	}
	holds := &fakeHoldRepo{byToken: map[string]*domain.Hold{"stale": hold}}
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, holds, twoTrucks(), schedule, catalog, weekBefore)

	req := validRequest()
	token := "stale"
	req.HoldToken = &token

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHoldExpired)
	// Истекшее удержание удаляется сразу, не дожидаясь фоновой чистки
	assert.Contains(t, holds.deletedTokens, "stale")
}

func TestExecute_HoldMismatch(t *testing.T) {
	hold := &domain.Hold{
		ID:        5,
		Token:     "held",
		Date:      monday,
		StartTime: "14:00", // другой слот
		ExpiresAt: weekBefore.Add(10 * time.Minute),
	}
	holds := &fakeHoldRepo{byToken: map[string]*domain.Hold{"held": hold}}
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, holds, twoTrucks(), schedule, catalog, weekBefore)

	req := validRequest()
	token := "held"
	req.HoldToken = &token

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHoldMismatch)
}

func TestExecute_ForeignHoldBlocksSlot(t *testing.T) {
	resourceID := int64(1)
	holds := &fakeHoldRepo{
		holds: []*domain.Hold{
			{Token: "other", Date: monday, StartTime: "10:00", DurationMinutes: 120,
				ResourceID: &resourceID, ExpiresAt: weekBefore.Add(10 * time.Minute)},
		},
	}
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	// Одна бригада - чужое удержание полностью занимает слот
	uc := newTestUseCase(bookings, holds, twoTrucks()[:1], schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ExistingBookingBlocksSlot(t *testing.T) {
	resourceID := int64(1)
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{StartTime: "10:00", DurationMinutes: 120, ResourceID: &resourceID,
				Status: domain.StatusConfirmed, BookingDate: monday},
		},
	}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	// Одна бригада и она уже занята подтвержденным бронированием
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks()[:1], schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 0, bookings.createAttempts)
}

func TestExecute_RetriesOnReferenceCollision(t *testing.T) {
	bookings := &fakeBookingRepo{duplicateFirst: 2}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)
	tx := &fakeTxManager{}
	uc.txManager = tx

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, bookings.createAttempts)
	// Прерванную коллизией транзакцию нельзя продолжать -
	// каждая новая попытка выполняется отдельным раундом
	assert.Equal(t, 3, tx.rounds)
	assert.NotEmpty(t, resp.Reference)
}

func TestExecute_ExhaustsReferenceAttempts(t *testing.T) {
	bookings := &fakeBookingRepo{duplicateFirst: maxReferenceAttempts}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReferenceAttempts, bookings.createAttempts)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CatalogUnavailable(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceDegraded}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestExecute_QuotedDurationOutsideBusinessHours(t *testing.T) {
	quote := testQuote()
	quote.DurationMinutes = 600 // 10 часов не помещаются до закрытия
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: quote}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_InvalidInput(t *testing.T) {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{week: testWeek(), config: testConfig()}
	catalog := &fakeCatalogClient{quote: testQuote()}
	uc := newTestUseCase(bookings, &fakeHoldRepo{}, twoTrucks(), schedule, catalog, weekBefore)

	req := validRequest()
	req.CustomerName = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CustomerEmail = "not-an-email"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPickResource_PrefersHoldResource(t *testing.T) {
	resourceID := int64(2)
	hold := &domain.Hold{Token: "held", ResourceID: &resourceID}

	got := pickResource(hold, "10:00", 60, twoTrucks(), nil, nil, 15, weekBefore)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestPickResource_FallsBackWhenHeldResourceBusy(t *testing.T) {
	heldID := int64(2)
	hold := &domain.Hold{Token: "held", ResourceID: &heldID}

	// Закрепленная бригада уже занята другим бронированием
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, ResourceID: &heldID, Status: domain.StatusConfirmed},
	}

	got := pickResource(hold, "10:00", 60, twoTrucks(), bookings, nil, 15, weekBefore)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}
