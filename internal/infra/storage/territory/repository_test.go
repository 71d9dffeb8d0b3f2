package territory

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/pkg/dbmetrics"
)

func TestRepository_GetBySector(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	primary := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT postcode_sector, primary_medic_id, secondary_medic_id FROM territories WHERE postcode_sector = $1")).
		WithArgs("SW1A").
		WillReturnRows(sqlmock.NewRows([]string{"postcode_sector", "primary_medic_id", "secondary_medic_id"}).
			AddRow("SW1A", primary.String(), nil))

	territory, err := repo.GetBySector(context.Background(), "SW1A")
	require.NoError(t, err)

	assert.Equal(t, domain.TerritoryRolePrimary, territory.RoleOf(primary))
	assert.False(t, territory.SecondaryMedicID.Valid)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err = repo.GetBySector(context.Background(), "ZZ9")
	assert.ErrorIs(t, err, ErrTerritoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
