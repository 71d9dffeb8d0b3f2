package traveltime

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT travel_time_minutes, distance_miles FROM travel_time_cache WHERE destination_postcode = $1 AND origin_postcode = $2 AND expires_at > $3")).
		WithArgs("E1 6AN", "SW1A 1AA", now).
		WillReturnRows(sqlmock.NewRows([]string{"travel_time_minutes", "distance_miles"}).AddRow(35, 6.2))

	estimate, err := repo.Get(context.Background(), "SW1A 1AA", "E1 6AN", now)
	require.NoError(t, err)
	assert.Equal(t, 35, estimate.Minutes)
	assert.Equal(t, 6.2, estimate.Miles)
	assert.Equal(t, "SW1A 1AA", estimate.OriginPostcode)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err = repo.Get(context.Background(), "SW1A 1AA", "M1 1AE", now)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	expires := time.Date(2026, 6, 11, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO travel_time_cache (origin_postcode,destination_postcode,travel_time_minutes,distance_miles,expires_at) VALUES ($1,$2,$3,$4,$5) ON CONFLICT")).
		WithArgs("SW1A 1AA", "E1 6AN", 35, 6.2, expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Upsert(context.Background(), &domain.TravelEstimate{
		OriginPostcode:      "SW1A 1AA",
		DestinationPostcode: "E1 6AN",
		Minutes:             35,
		Miles:               6.2,
	}, expires)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
