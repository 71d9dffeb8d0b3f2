package medic

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := newRepo(t)
	withCalendar, plain := uuid.New(), uuid.New()
	expiry := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	until := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow(withCalendar.String(), "Amira", "Khan", "SW1A 2AA", true, true, 4.5, true, nil,
			"amira@example.com", "access", "refresh", expiry, true).
		AddRow(plain.String(), "Tom", "Reed", "E1 6AN", false, false, 0.0, false, until,
			nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, first_name, last_name")).
		WillReturnRows(rows)

	medics, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, medics, 2)

	first := medics[0]
	assert.Equal(t, withCalendar, first.ID)
	assert.Equal(t, "Amira Khan", first.FullName())
	assert.Equal(t, 4.5, first.StarRating)
	assert.Nil(t, first.UnavailableUntil)
	require.NotNil(t, first.Calendar)
	assert.True(t, first.Calendar.Connected())
	assert.Equal(t, expiry, first.Calendar.TokenExpiry)

	second := medics[1]
	assert.False(t, second.IsRated())
	assert.Nil(t, second.Calendar)
	require.NotNil(t, second.UnavailableUntil)
	assert.True(t, second.IsUnavailableOn(time.Date(2026, 6, 12, 15, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrMedicNotFound)
}

func TestRepository_UpdateCalendarToken(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	expiry := time.Date(2026, 6, 10, 13, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE medics SET google_access_token = $1, google_refresh_token = $2, google_token_expiry = $3 WHERE id = $4")).
		WithArgs("new-access", "refresh", expiry, id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateCalendarToken(context.Background(), id, "new-access", "refresh", expiry))

	mock.ExpectExec("UPDATE medics").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCalendarToken(context.Background(), id, "a", "r", expiry)
	assert.ErrorIs(t, err, ErrMedicNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
