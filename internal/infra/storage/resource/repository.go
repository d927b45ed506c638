package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/pkg/dbmetrics"
	"github.com/fleetbright/FB-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с ресурсами (бригадами)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает активные ресурсы в порядке приоритета распределения
// Порядок детерминирован: priority_order ASC, затем id ASC
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"display_name",
		"identifier_code",
		"active",
		"priority_order",
	).
		From("resources").
		Where(squirrel.Eq{"active": true}).
		OrderBy("priority_order ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		var resource domain.Resource

		err := rows.Scan(
			&resource.ID,
			&resource.DisplayName,
			&resource.IdentifierCode,
			&resource.Active,
			&resource.PriorityOrder,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}

		resources = append(resources, &resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"display_name",
		"identifier_code",
		"active",
		"priority_order",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var resource domain.Resource

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.DisplayName,
		&resource.IdentifierCode,
		&resource.Active,
		&resource.PriorityOrder,
	)

	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return &resource, nil
}
