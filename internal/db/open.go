package db

import (
	"fmt"

	"github.com/Mester2001/portfolio/internal/config"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/logger"
)

var (
	_ models.KeyValueStore = (*PostgresDB)(nil)
	_ models.KeyValueStore = (*SQLiteDB)(nil)
	_ models.KeyValueStore = (*MemoryDB)(nil)
)

// Open returns the key-value backend selected by cfg.StorageDriver, migrated
// and ready to use.
func Open(cfg *config.Config) (models.KeyValueStore, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pg, err := NewPostgresDB(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate("file://migrations"); err != nil {
			pg.Close()
			return nil, err
		}
		logger.Info("Successfully ran migrations")
		return pg, nil
	case config.DriverSQLite:
		logger.Info("using sqlite store at %s", cfg.SQLitePath)
		return NewSQLiteDB(cfg.SQLitePath)
	case config.DriverMemory:
		logger.Warn("using in-memory store, changes are lost on restart")
		return NewMemoryDB(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
