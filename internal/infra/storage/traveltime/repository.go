package traveltime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/psqlbuilder"
)

const table = "travel_time_cache"

// Repository кеш оценок времени в пути между почтовыми индексами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кеша
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает неистёкшую запись кеша для пары индексов
func (r *Repository) Get(ctx context.Context, origin, destination string, now time.Time) (*domain.TravelEstimate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("travel_time_minutes", "distance_miles").
		From(table).
		Where(squirrel.Eq{
			"origin_postcode":      origin,
			"destination_postcode": destination,
		}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	estimate := &domain.TravelEstimate{OriginPostcode: origin, DestinationPostcode: destination}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&estimate.Minutes, &estimate.Miles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan estimate: %v", ErrScanRow, err)
	}

	return estimate, nil
}

// Upsert сохраняет оценку, перезаписывая существующую запись для пары индексов
func (r *Repository) Upsert(ctx context.Context, estimate *domain.TravelEstimate, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("origin_postcode", "destination_postcode", "travel_time_minutes", "distance_miles", "expires_at").
		Values(estimate.OriginPostcode, estimate.DestinationPostcode, estimate.Minutes, estimate.Miles, expiresAt).
		Suffix("ON CONFLICT (origin_postcode, destination_postcode) DO UPDATE SET " +
			"travel_time_minutes = EXCLUDED.travel_time_minutes, " +
			"distance_miles = EXCLUDED.distance_miles, " +
			"expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
