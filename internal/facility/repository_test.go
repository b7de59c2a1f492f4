package facility

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
)

var facilityColumns = []string{"id", "name", "sport_id", "description", "price_per_hour", "created_at"}

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(conn, "sqlmock")
	return NewRepository(sqlxDB), mock, func() { sqlxDB.Close() }
}

func TestRepository_Create(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`INSERT INTO facilities.*`).
		WithArgs("F1", "Cancha 1", "futbol", "grass", 50.0).
		WillReturnRows(sqlmock.NewRows(facilityColumns).AddRow("F1", "Cancha 1", "futbol", "grass", 50.0, time.Now()))

	f, err := repo.Create(context.Background(), &Facility{ID: "F1", Name: "Cancha 1", SportID: "futbol", Description: "grass", PricePerHour: 50})
	require.NoError(t, err)
	assert.Equal(t, "F1", f.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`SELECT id, name, sport_id, description, price_per_hour, created_at FROM facilities.*`).
		WillReturnRows(sqlmock.NewRows(facilityColumns).
			AddRow("F1", "Cancha 1", "futbol", "", 50.0, time.Now()).
			AddRow("F2", "Cancha 2", "tenis", "", 30.0, time.Now()))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`SELECT .* FROM facilities WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	mock.ExpectQuery(`SELECT .* FROM facilities WHERE id = \$1`).
		WithArgs("F1").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetByID(context.Background(), "F1")
	assert.ErrorIs(t, err, db.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
