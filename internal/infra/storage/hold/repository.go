package hold

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

// Repository репозиторий для работы с временными удержаниями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория удержаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое удержание слота
func (r *Repository) Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns(
			"token",
			"hold_date",
			"start_time",
			"duration_minutes",
			"resource_id",
			"expires_at",
		).
		Values(
			hold.Token,
			hold.Date,
			hold.StartTime,
			hold.DurationMinutes,
			hold.ResourceID,
			hold.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hold.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	hold.CreatedAt = createdAt.Time

	return hold, nil
}

// GetByToken получает удержание по токену
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"token",
		"hold_date",
		"start_time",
		"duration_minutes",
		"resource_id",
		"expires_at",
		"created_at",
	).
		From("holds").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var hold domain.Hold
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hold.ID,
		&hold.Token,
		&hold.Date,
		&hold.StartTime,
		&hold.DurationMinutes,
		&hold.ResourceID,
		&hold.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan hold: %v", ErrScanRow, err)
	}

	hold.CreatedAt = createdAt.Time

	return &hold, nil
}

// GetActiveByDate получает неистекшие удержания на дату
// Внутри транзакции добавляет FOR UPDATE - блокирует строки
// при проверке конфликтов в place_hold и create_booking
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"token",
		"hold_date",
		"start_time",
		"duration_minutes",
		"resource_id",
		"expires_at",
		"created_at",
	).
		From("holds").
		Where(squirrel.Eq{"hold_date": date}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanHolds(rows)
}

// DeleteByToken удаляет удержание по токену
// Возвращает ErrHoldNotFound, если удержание не существует -
// вызывающая сторона решает, считать ли это ошибкой
func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// DeleteExpired удаляет все истекшие удержания, возвращает их количество
// Вызывается фоновой задачей и попутно при расчете доступности
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanHolds сканирует результаты запроса в слайс удержаний
func (r *Repository) scanHolds(rows *sql.Rows) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		var hold domain.Hold
		var createdAt sql.NullTime

		err := rows.Scan(
			&hold.ID,
			&hold.Token,
			&hold.Date,
			&hold.StartTime,
			&hold.DurationMinutes,
			&hold.ResourceID,
			&hold.ExpiresAt,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanHolds - scan row: %v", ErrScanRow, err)
		}

		hold.CreatedAt = createdAt.Time

		holds = append(holds, &hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}
