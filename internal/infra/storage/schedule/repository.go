package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/pkg/dbmetrics"
	"github.com/fleetbright/FB-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписанием: часы работы по дням недели,
// особые дни (закрытия) и параметры планировщика
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekSchedule получает часы работы на все дни недели
// Дни недели хранятся как int по time.Weekday: 0=воскресенье .. 6=суббота.
// Отсутствующая строка означает закрытый день
func (r *Repository) GetWeekSchedule(ctx context.Context) (*domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"open_time",
		"close_time",
	).
		From("business_hours").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var week domain.WeekSchedule

	for rows.Next() {
		var weekday int
		var day domain.DayHours

		err := rows.Scan(
			&weekday,
			&day.Enabled,
			&day.Open,
			&day.Close,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetWeekSchedule - scan row: %v", ErrScanRow, err)
		}

		switch time.Weekday(weekday) {
		case time.Monday:
			week.Monday = day
		case time.Tuesday:
			week.Tuesday = day
		case time.Wednesday:
			week.Wednesday = day
		case time.Thursday:
			week.Thursday = day
		case time.Friday:
			week.Friday = day
		case time.Saturday:
			week.Saturday = day
		case time.Sunday:
			week.Sunday = day
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - rows error: %v", ErrScanRow, err)
	}

	return &week, nil
}

// UpdateDayHours обновляет часы работы на день недели (upsert)
func (r *Repository) UpdateDayHours(ctx context.Context, weekday time.Weekday, hours domain.DayHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns(
			"weekday",
			"enabled",
			"open_time",
			"close_time",
		).
		Values(
			int(weekday),
			hours.Enabled,
			hours.Open,
			hours.Close,
		).
		Suffix("ON CONFLICT (weekday) DO UPDATE SET " +
			"enabled = EXCLUDED.enabled, " +
			"open_time = EXCLUDED.open_time, " +
			"close_time = EXCLUDED.close_time, " +
			"updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDayHours - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateDayHours - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSpecialDay получает активный особый день на дату
// Возвращает ErrSpecialDayNotFound, если дата не отмечена как особая
func (r *Repository) GetSpecialDay(ctx context.Context, date time.Time) (*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"special_date",
		"reason",
		"category",
		"active",
		"created_at",
		"updated_at",
	).
		From("special_days").
		Where(squirrel.Eq{"special_date": date}).
		Where(squirrel.Eq{"active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.SpecialDay
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.Date,
		&day.Reason,
		&day.Category,
		&day.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpecialDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDay - scan special day: %v", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// ListSpecialDays получает особые дни в диапазоне дат (включительно)
func (r *Repository) ListSpecialDays(ctx context.Context, from, to time.Time) ([]*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"special_date",
		"reason",
		"category",
		"active",
		"created_at",
		"updated_at",
	).
		From("special_days").
		Where(squirrel.GtOrEq{"special_date": from}).
		Where(squirrel.LtOrEq{"special_date": to}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("special_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.SpecialDay, 0)

	for rows.Next() {
		var day domain.SpecialDay
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.Date,
			&day.Reason,
			&day.Category,
			&day.Active,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListSpecialDays - scan row: %v", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time

		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// CreateSpecialDay создает особый день (закрытие даты)
func (r *Repository) CreateSpecialDay(ctx context.Context, day *domain.SpecialDay) (*domain.SpecialDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_days").
		Columns(
			"special_date",
			"reason",
			"category",
			"active",
		).
		Values(
			day.Date,
			day.Reason,
			day.Category,
			day.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialDay - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return day, nil
}

// DeactivateSpecialDay снимает закрытие с особого дня
// Запись не удаляется, чтобы сохранить историю
func (r *Repository) DeactivateSpecialDay(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("special_days").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateSpecialDay - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeactivateSpecialDay - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeactivateSpecialDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialDayNotFound
	}

	return nil
}

// GetConfig получает параметры планировщика (единственная строка)
// Возвращает ErrConfigNotFound, если строка еще не создана
func (r *Repository) GetConfig(ctx context.Context) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_granularity_minutes",
		"buffer_minutes",
		"hold_ttl_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("scheduling_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SchedulingConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.SlotGranularityMinutes,
		&cfg.BufferMinutes,
		&cfg.HoldTTLMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// UpdateConfig обновляет параметры планировщика (upsert единственной строки)
func (r *Repository) UpdateConfig(ctx context.Context, cfg *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_config").
		Columns(
			"id",
			"slot_granularity_minutes",
			"buffer_minutes",
			"hold_ttl_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			1,
			cfg.SlotGranularityMinutes,
			cfg.BufferMinutes,
			cfg.HoldTTLMinutes,
			cfg.AdvanceBookingDays,
			cfg.MinBookingNoticeMinutes,
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"slot_granularity_minutes = EXCLUDED.slot_granularity_minutes, " +
			"buffer_minutes = EXCLUDED.buffer_minutes, " +
			"hold_ttl_minutes = EXCLUDED.hold_ttl_minutes, " +
			"advance_booking_days = EXCLUDED.advance_booking_days, " +
			"min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
