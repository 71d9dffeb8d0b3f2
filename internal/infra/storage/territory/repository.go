package territory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/psqlbuilder"
)

const table = "territories"

// Repository репозиторий территорий (почтовый сектор -> основной/резервный медик)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория территорий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySector получает территорию по ключу сектора (см. domain.PostcodeSectorKey)
func (r *Repository) GetBySector(ctx context.Context, sector string) (*domain.Territory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("postcode_sector", "primary_medic_id", "secondary_medic_id").
		From(table).
		Where(squirrel.Eq{"postcode_sector": sector}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySector - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Territory
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.PostcodeSector,
		&t.PrimaryMedicID,
		&t.SecondaryMedicID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTerritoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySector - scan territory: %v", ErrScanRow, err)
	}

	return &t, nil
}
