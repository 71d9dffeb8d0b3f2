package medic

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

const table = "medics"

var columns = []string{
	"id",
	"first_name",
	"last_name",
	"home_postcode",
	"has_confined_space_cert",
	"has_trauma_cert",
	"star_rating",
	"available_for_work",
	"unavailable_until",
	"google_calendar_id",
	"google_access_token",
	"google_refresh_token",
	"google_token_expiry",
	"google_calendar_access_granted",
}

// Repository репозиторий медиков
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория медиков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAll возвращает весь пул медиков
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Medic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	medics := make([]*domain.Medic, 0)
	for rows.Next() {
		m, err := scanMedic(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		medics = append(medics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return medics, nil
}

// GetByID получает медика по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Medic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	m, err := scanMedic(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMedicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan medic: %v", ErrScanRow, err)
	}

	return m, nil
}

// UpdateCalendarToken сохраняет обновлённый OAuth токен календаря
func (r *Repository) UpdateCalendarToken(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("google_access_token", accessToken).
		Set("google_refresh_token", refreshToken).
		Set("google_token_expiry", expiry).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarToken - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarToken - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCalendarToken - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrMedicNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedic(row rowScanner) (*domain.Medic, error) {
	var (
		m                domain.Medic
		unavailableUntil sql.NullTime
		calendarID       sql.NullString
		accessToken      sql.NullString
		refreshToken     sql.NullString
		tokenExpiry      sql.NullTime
		accessGranted    sql.NullBool
	)

	err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.HomePostcode,
		&m.HasConfinedSpaceCert,
		&m.HasTraumaCert,
		&m.StarRating,
		&m.AvailableForWork,
		&unavailableUntil,
		&calendarID,
		&accessToken,
		&refreshToken,
		&tokenExpiry,
		&accessGranted,
	)
	if err != nil {
		return nil, err
	}

	if unavailableUntil.Valid {
		until := unavailableUntil.Time
		m.UnavailableUntil = &until
	}

	if refreshToken.Valid && refreshToken.String != "" {
		m.Calendar = &domain.CalendarConnection{
			CalendarID:    calendarID.String,
			AccessToken:   accessToken.String,
			RefreshToken:  refreshToken.String,
			TokenExpiry:   tokenExpiry.Time,
			AccessGranted: accessGranted.Bool,
		}
	}

	return &m, nil
}
