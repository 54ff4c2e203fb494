package models

import "context"

// * Keys written into the key-value store
const (
	KeyProjects = "portfolio_projects"
	KeyTheme    = "k_theme"
	KeyLanguage = "k_lang"
)

// * KeyValueStore is the persistence contract shared by the SQLite, Postgres
// * and in-memory backends
type KeyValueStore interface {
	// * Get returns found=false and a nil error when the key was never written
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
