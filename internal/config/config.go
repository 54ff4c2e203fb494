package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	HydrateFromSeed  = "seed"
	HydrateFromStore = "store"
)

type Config struct {
	GitHubUsername  string
	GitHubAPIURL    string
	GitHubToken     string
	RefreshInterval time.Duration
	SeedPath        string
	HydrateFrom     string
	StorageDriver   string
	SQLitePath      string
	DBURL           string
	RabbitMQURL     string
	ServerPort      string
}

// * LoadConfiguration reads the .env file (when present) and the process environment
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubUsername: os.Getenv("GITHUB_USERNAME"),
		GitHubAPIURL:   envOr("GITHUB_API_URL", "https://api.github.com"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		SeedPath:       envOr("SEED_PATH", "data/projects.json"),
		HydrateFrom:    strings.ToLower(envOr("HYDRATE_FROM", HydrateFromSeed)),
		StorageDriver:  strings.ToLower(envOr("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:     envOr("SQLITE_PATH", "data/portfolio.db"),
		DBURL:          os.Getenv("DB_URL"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		ServerPort:     envOr("SERVER_PORT", ":8081"),
	}

	interval, err := time.ParseDuration(envOr("REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * Validate checks the settings that have no sensible default
func (c *Config) Validate() error {
	if c.GitHubUsername == "" {
		return errors.New("GITHUB_USERNAME is required")
	}

	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be positive")
	}

	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.DBURL == "" {
			return errors.New("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.HydrateFrom != HydrateFromSeed && c.HydrateFrom != HydrateFromStore {
		return fmt.Errorf("HYDRATE_FROM should be %q or %q", HydrateFromSeed, HydrateFromStore)
	}

	if !strings.HasPrefix(c.ServerPort, ":") && !strings.Contains(c.ServerPort, ":") {
		c.ServerPort = ":" + c.ServerPort
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
