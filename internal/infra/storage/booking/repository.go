package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AssignmentService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"site_postcode",
	"site_address",
	"shift_date",
	"shift_start_time",
	"shift_end_time",
	"confined_space_required",
	"trauma_specialist_required",
	"status",
	"medic_id",
	"auto_matched",
	"match_score",
	"match_criteria",
	"requires_manual_approval",
	"manual_approval_reason",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("shift_date ASC", "shift_start_time ASC")

	if filter.MedicID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"medic_id": *filter.MedicID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"shift_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"shift_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusStrings(filter.Statuses)})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// MedicIDsBookedOn возвращает медиков, у которых есть бронирование в указанных статусах на дату
func (r *Repository) MedicIDsBookedOn(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT medic_id").
		From(table).
		Where(squirrel.Eq{
			"shift_date": date.Format(domain.DateFormat),
			"status":     domain.StatusStrings(statuses),
		}).
		Where(squirrel.NotEq{"medic_id": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MedicIDsBookedOn - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MedicIDsBookedOn - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: MedicIDsBookedOn - scan medic_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: MedicIDsBookedOn - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// CountBookedDays считает различные даты с бронированиями медика в периоде [from, to]
func (r *Repository) CountBookedDays(ctx context.Context, medicID uuid.UUID, from, to time.Time, statuses []domain.BookingStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT shift_date)").
		From(table).
		Where(squirrel.Eq{
			"medic_id": medicID,
			"status":   domain.StatusStrings(statuses),
		}).
		Where(squirrel.GtOrEq{"shift_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"shift_date": to.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBookedDays - build select query: %v", ErrBuildQuery, err)
	}

	var days int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&days); err != nil {
		return 0, fmt.Errorf("%w: CountBookedDays - scan count: %v", ErrScanRow, err)
	}

	return days, nil
}

// LockMedicDay берёт транзакционную advisory-блокировку на пару (медик, дата).
// Блокировка снимается при завершении транзакции; вне транзакции - ErrTransaction.
func (r *Repository) LockMedicDay(ctx context.Context, medicID uuid.UUID, date time.Time) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockMedicDay - advisory lock requires a transaction", ErrTransaction)
	}

	key := fmt.Sprintf("medic-day:%s:%s", medicID, date.Format(domain.DateFormat))
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("%w: LockMedicDay - acquire lock: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateAutoMatch записывает результат автоподбора.
// Применяется только к бронированию в статусе pending без медика и с ожидаемой версией,
// иначе возвращает ErrPreconditionFailed и строку не меняет.
func (r *Repository) UpdateAutoMatch(ctx context.Context, update domain.AutoMatchUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("medic_id", update.MedicID).
		Set("status", update.Status).
		Set("auto_matched", update.MedicID.Valid).
		Set("match_score", update.MatchScore).
		Set("match_criteria", update.Criteria).
		Set("requires_manual_approval", update.RequiresManualApproval).
		Set("manual_approval_reason", update.ManualApprovalReason).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":       update.BookingID,
			"status":   domain.StatusPending,
			"medic_id": nil,
			"version":  update.ExpectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAutoMatch - build update query: %v", ErrBuildQuery, err)
	}

	return r.execPrecondition(ctx, executor, "UpdateAutoMatch", query, args)
}

// AssignMedic назначает медика вручную с проверкой версии
func (r *Repository) AssignMedic(ctx context.Context, update domain.AssignmentUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("medic_id", update.MedicID).
		Set("status", update.Status).
		Set("auto_matched", false).
		Set("requires_manual_approval", false).
		Set("manual_approval_reason", nil).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      update.BookingID,
			"version": update.ExpectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignMedic - build update query: %v", ErrBuildQuery, err)
	}

	return r.execPrecondition(ctx, executor, "AssignMedic", query, args)
}

func (r *Repository) execPrecondition(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPreconditionFailed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		matchScore           sql.NullFloat64
		matchCriteria        []byte
		manualApprovalReason sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.SitePostcode,
		&booking.SiteAddress,
		&booking.ShiftDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.ConfinedSpaceRequired,
		&booking.TraumaSpecialistRequired,
		&booking.Status,
		&booking.MedicID,
		&booking.AutoMatched,
		&matchScore,
		&matchCriteria,
		&booking.RequiresManualApproval,
		&manualApprovalReason,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if matchScore.Valid {
		score := matchScore.Float64
		booking.MatchScore = &score
	}
	if len(matchCriteria) > 0 {
		var criteria domain.MatchCriteria
		if err := criteria.Scan(matchCriteria); err != nil {
			return nil, err
		}
		booking.MatchCriteria = &criteria
	}
	if manualApprovalReason.Valid {
		reason := manualApprovalReason.String
		booking.ManualApprovalReason = &reason
	}

	booking.ShiftDate = domain.DateOnly(booking.ShiftDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return &booking, nil
}
