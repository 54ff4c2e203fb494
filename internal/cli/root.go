// Package cli implements portfolioctl, the admin command line for the
// portfolio service. It talks to the same key-value store as the server.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mester2001/portfolio/internal/config"
	"github.com/Mester2001/portfolio/internal/db"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/output"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	ui *output.UI
	v  *viper.Viper

	kv        models.KeyValueStore
	ownsStore bool

	// * github is only set by tests; nil means a real client from config
	github service.GitHubClient
}

// Execute runs portfolioctl with os.Args.
func Execute() {
	if err := NewRootCmd(output.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCmd(ui *output.UI) *cobra.Command {
	return (&app{ui: ui, v: viper.New()}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage portfolio projects, preferences and the GitHub profile",
		Long: `portfolioctl edits the project collection shown on the portfolio page,
toggles the theme and language flags and prints the aggregated GitHub
profile. It reads the same storage settings as the server.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default ~/.config/portfolio/config.yaml)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.String("storage", config.DriverSQLite, "Storage driver: sqlite, postgres or memory")
	flags.String("sqlite-path", "data/portfolio.db", "SQLite database file")
	flags.String("db-url", "", "Postgres connection URL")
	flags.String("seed", "data/projects.json", "Seed document used when nothing is stored yet")
	flags.String("username", "", "GitHub username")

	for key, flag := range map[string]string{
		"verbose":         "verbose",
		"storage_driver":  "storage",
		"sqlite_path":     "sqlite-path",
		"db_url":          "db-url",
		"seed_path":       "seed",
		"github_username": "username",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(a.projectsCmd())
	root.AddCommand(a.profileCmd())
	root.AddCommand(a.prefsCmd())
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".config", "portfolio"))
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("PORTFOLIO")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	a.v.SetDefault("github_api_url", "https://api.github.com")
	a.v.SetDefault("github_token", "")

	// Config file is optional
	_ = a.v.ReadInConfig()

	a.ui.Verbose = a.v.GetBool("verbose")
	if a.ui.Verbose {
		logger.SetLevel(logger.LevelDebug)
	} else {
		logger.SetLevel(logger.LevelWarn)
	}
	return nil
}

func (a *app) config() *config.Config {
	return &config.Config{
		GitHubUsername: a.v.GetString("github_username"),
		GitHubAPIURL:   a.v.GetString("github_api_url"),
		GitHubToken:    a.v.GetString("github_token"),
		SeedPath:       a.v.GetString("seed_path"),
		HydrateFrom:    config.HydrateFromStore,
		StorageDriver:  strings.ToLower(a.v.GetString("storage_driver")),
		SQLitePath:     a.v.GetString("sqlite_path"),
		DBURL:          a.v.GetString("db_url"),
	}
}

// store opens the key-value backend on first use.
func (a *app) store() (models.KeyValueStore, error) {
	if a.kv != nil {
		return a.kv, nil
	}

	cfg := a.config()
	a.ui.VerboseLog("opening %s store", cfg.StorageDriver)
	kv, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a.kv = kv
	a.ownsStore = true
	return kv, nil
}

func (a *app) close() error {
	if a.kv == nil || !a.ownsStore {
		return nil
	}
	err := a.kv.Close()
	a.kv = nil
	a.ownsStore = false
	return err
}

// projectStore hydrates from storage, falling back to the seed document when
// nothing was saved yet. Mutations are not saved until Persist is called.
func (a *app) projectStore(ctx context.Context) (*service.ProjectStore, *service.KVProjectRepository, error) {
	kv, err := a.store()
	if err != nil {
		return nil, nil, err
	}

	repo := service.NewKVProjectRepository(kv)
	store := service.NewProjectStore(repo, service.ProjectStoreOptions{
		SeedPath:    a.config().SeedPath,
		HydrateFrom: config.HydrateFromStore,
		ManualSave:  true,
	})
	store.Load(ctx)
	return store, repo, nil
}

// ensureStored writes the hydrated collection when storage holds nothing yet,
// so repository edits also see projects that only came from the seed.
func (a *app) ensureStored(ctx context.Context, store *service.ProjectStore, repo *service.KVProjectRepository) error {
	_, found, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	if err := store.Persist(ctx); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}
