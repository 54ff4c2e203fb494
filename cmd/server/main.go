package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Mester2001/portfolio/docs"
	"github.com/Mester2001/portfolio/internal/config"
	"github.com/Mester2001/portfolio/internal/db"
	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/handler"
	md "github.com/Mester2001/portfolio/internal/middleware"
	"github.com/Mester2001/portfolio/internal/queue"
	"github.com/Mester2001/portfolio/internal/service"
	"github.com/Mester2001/portfolio/internal/web"
	"github.com/Mester2001/portfolio/internal/worker"
	"github.com/Mester2001/portfolio/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Portfolio Service
// @version 1.0.0
// @description GitHub profile aggregation and project management for a personal portfolio.
// @host localhost:8081
// @BasePath /v1
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	// * Open the key-value store (migrates postgres)
	store, err := db.Open(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Create services
	projects := service.NewProjectStore(service.NewKVProjectRepository(store), service.ProjectStoreOptions{
		SeedPath:    cfg.SeedPath,
		HydrateFrom: cfg.HydrateFrom,
	})
	projects.Load(ctx)

	preferences := service.NewPreferenceStore(store)

	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
	profile := service.NewProfileService(githubClient, cfg.GitHubUsername, service.ProfileServiceOptions{})

	// * Optional broker for refresh requests
	var publisher handler.RefreshPublisher
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, refreshing inline: %v", err)
		} else {
			defer rabbitMQ.Close()

			err = rabbitMQ.ConsumeRefreshRequests(ctx, func(ctx context.Context, req queue.RefreshRequest) error {
				logger.Debug("Refresh requested (%s) at %s", req.Reason, req.RequestedAt.Format(time.RFC3339))
				_, err := profile.Refresh(ctx)
				return err
			})
			if err != nil {
				logger.Warn("Failed to consume refresh requests, refreshing inline: %v", err)
			} else {
				publisher = rabbitMQ
			}
		}
	}

	// * Create and start worker
	refreshWorker := worker.NewRefreshWorker(profile, cfg.RefreshInterval)
	go refreshWorker.Run(ctx)

	// * Create API server
	apiHandler := handler.NewAPIHandler(profile, projects, preferences, publisher)
	pages, err := web.New(profile, projects, preferences)
	if err != nil {
		logger.Error("Failed to load templates: %v", err)
		os.Exit(1)
	}

	router := mux.NewRouter()
	router.Use(md.LoggingMiddleware)
	router.Use(md.AdminMode)
	api := router.PathPrefix("/v1").Subrouter()

	apiHandler.RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)
	pages.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}

	// * Retry any best-effort save that failed while running
	if err := projects.Persist(shutdownCtx); err != nil {
		logger.Error("Error saving projects on shutdown: %v", err)
	}
}
