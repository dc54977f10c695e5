// cmd/aggregator/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"vibe-apps-aggregator/internal/api"
	"vibe-apps-aggregator/internal/config"
	"vibe-apps-aggregator/internal/database"
	"vibe-apps-aggregator/internal/github"
	"vibe-apps-aggregator/internal/ingest"
	"vibe-apps-aggregator/internal/normalize"
	"vibe-apps-aggregator/internal/platform"
	"vibe-apps-aggregator/internal/source"
	"vibe-apps-aggregator/internal/tagger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize database connection and run migrations
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	if err := runMigrations(cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	// 5. Seed platform reference data
	if err := seedPlatforms(ctx, dbpool); err != nil {
		return fmt.Errorf("failed to seed platforms: %w", err)
	}
	logger.Info("Platform reference data seeded")

	// 6. Initialize application components
	sources := buildSources(cfg, logger)
	ingestor := ingest.NewIngestor(dbpool, normalize.Default(), tagger.Default(),
		sources, cfg.ScrapeInterval, logger)

	// 7. Start the ingestor in a separate goroutine
	go ingestor.Start(ctx)

	// 8. Start the HTTP API
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(database.New(dbpool), logger),
	}
	go func() {
		logger.Info("HTTP API listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	// 9. Wait for shutdown signal
	logger.Info("Application started. Waiting for shutdown signal...")
	<-ctx.Done()
	logger.Info("Shutdown signal received. Exiting.")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	return nil
}

// buildSources wires one raw-record source per configured platform. The
// GitHub code search runs only with a token; gallery platforms read the JSON
// dumps their external scrapers drop into the data directory.
func buildSources(cfg *config.Config, logger *slog.Logger) []source.Source {
	var sources []source.Source

	if cfg.GithubToken != "" {
		ghClient := github.NewClient(cfg.GithubToken, logger)
		sources = append(sources,
			source.NewGitHubSearch(ghClient, source.DefaultMarkerQueries(), cfg.SearchMaxPages))
	} else {
		logger.Warn("GITHUB_TOKEN not set, skipping GitHub code search source")
	}

	sources = append(sources,
		source.NewFileDump(platform.V0, cfg.DataDir, "v0.json"),
		source.NewFileDump(platform.Lovable, cfg.DataDir, "lovable.json"),
		source.NewFileDump(platform.Bolt, cfg.DataDir, "bolt.json"),
		source.NewFileDump(platform.Jules, cfg.DataDir, "jules.json"),
	)
	return sources
}

func seedPlatforms(ctx context.Context, dbpool *pgxpool.Pool) error {
	q := database.New(dbpool)
	for _, def := range platform.Seed() {
		if _, err := q.UpsertPlatform(ctx, database.UpsertPlatformParams{
			Name:        def.Name,
			BaseUrl:     def.BaseURL,
			Description: def.Description,
		}); err != nil {
			return err
		}
	}
	return nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
