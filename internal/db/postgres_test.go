package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &PostgresDB{db: mockDB}, mock
}

func TestPostgresGet(t *testing.T) {
	pg, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"value"}).AddRow(`{"projects":[]}`)
	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("portfolio_projects").
		WillReturnRows(rows)

	value, found, err := pg.Get(context.Background(), "portfolio_projects")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"projects":[]}`, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_Missing(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("k_theme").
		WillReturnError(sql.ErrNoRows)

	value, found, err := pg.Get(context.Background(), "k_theme")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_Error(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("k_lang").
		WillReturnError(assert.AnError)

	_, _, err := pg.Get(context.Background(), "k_lang")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.RefKVStore))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSet(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("k_theme", "light").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := pg.Set(context.Background(), "k_theme", "light")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSet_Error(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("k_theme", "light").
		WillReturnError(assert.AnError)

	err := pg.Set(context.Background(), "k_theme", "light")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectExec("DELETE FROM kv_store").
		WithArgs("portfolio_projects").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pg.Delete(context.Background(), "portfolio_projects")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
