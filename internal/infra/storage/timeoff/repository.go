package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/psqlbuilder"
)

const table = "time_off"

var columns = []string{"id", "medic_id", "start_date", "end_date", "status", "rrule", "reason"}

// Repository репозиторий отпусков и отгулов медиков
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отгулов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListApprovedForMedic возвращает одобренные отгулы медика, диапазон которых включает дату.
// Повторяющиеся правила (rrule) проверяются уже в домене через TimeOff.Covers.
func (r *Repository) ListApprovedForMedic(ctx context.Context, medicID uuid.UUID, date time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"medic_id": medicID,
			"status":   domain.TimeOffApproved,
		}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedForMedic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedForMedic - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var (
			t      domain.TimeOff
			rule   sql.NullString
			reason sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.MedicID, &t.StartDate, &t.EndDate, &t.Status, &rule, &reason); err != nil {
			return nil, fmt.Errorf("%w: ListApprovedForMedic - scan row: %v", ErrScanRow, err)
		}
		t.RRule = rule.String
		t.Reason = reason.String
		result = append(result, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovedForMedic - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
