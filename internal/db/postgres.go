package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			errors.RefDBConnection,
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelFatal,
		)
	}

	// * The store holds three keys; a small pool is plenty
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.New(
			errors.RefDBConnection,
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelFatal,
		)
	}

	logger.Info("connected to database successfully 🎉")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate(sourceURL string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			errors.RefDBMigration,
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelFatal,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return errors.New(
			errors.RefDBMigration,
			"Failed to create migration instance",
			fmt.Sprintf("Could not load migrations from %s", sourceURL),
			err,
			errors.LevelFatal,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			errors.RefDBMigration,
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelFatal,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			errors.RefDBConnection,
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresDB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.New(
			errors.RefKVStore,
			"Failed to read key",
			fmt.Sprintf("Could not read key '%s'", key),
			err,
			errors.LevelError,
		)
	}
	return value, true, nil
}

func (p *PostgresDB) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT(key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.New(
			errors.RefKVStore,
			"Failed to write key",
			fmt.Sprintf("Could not write key '%s'", key),
			err,
			errors.LevelError,
		)
	}
	return nil
}

func (p *PostgresDB) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return errors.New(
			errors.RefKVStore,
			"Failed to delete key",
			fmt.Sprintf("Could not delete key '%s'", key),
			err,
			errors.LevelError,
		)
	}
	return nil
}
