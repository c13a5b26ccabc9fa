// Package main is the entry point for the Folio server.
// Folio is a server-rendered portfolio application with project
// management, session-based authentication, and media uploads.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adityarama/folio/internal/config"
	"github.com/adityarama/folio/internal/handler"
	"github.com/adityarama/folio/internal/metrics"
	"github.com/adityarama/folio/internal/repository"
	"github.com/adityarama/folio/internal/repository/postgres"
	"github.com/adityarama/folio/internal/repository/sqlite"
	"github.com/adityarama/folio/internal/service"
	"github.com/adityarama/folio/internal/session"
	"github.com/adityarama/folio/internal/storage"
	"github.com/adityarama/folio/internal/storage/local"
	"github.com/adityarama/folio/internal/storage/s3"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Starting Folio server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, dbHealth, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer dbHealth.Close()

	store, err := openSessionStore(ctx, cfg.Session)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open session store")
	}
	defer store.Close()
	sessions := session.NewManager(store, cfg.Session.TTL, logger)

	uploader, localDir, err := openUploader(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	authService := service.NewAuthService(repos.User, sessions, logger)
	projectService := service.NewProjectService(repos.Project, uploader, logger)

	web, err := handler.NewWebHandler(handler.WebConfig{
		AuthService:    authService,
		ProjectService: projectService,
		Sessions:       sessions,
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		MaxUploadSize:  cfg.Server.MaxUploadSize,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize web handler")
	}

	router := newRouter(cfg, logger, sessions, web, localDir)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("HTTP server failed")
	case <-ctx.Done():
		logger.Info().Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLogger builds the root logger from logging config.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := log.Logger.Level(level)
	if cfg.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}

// openDatabase connects to the configured database backend, runs
// migrations, and returns the repository set.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.Database.Path); dir != "" && cfg.Database.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return &repository.Repositories{
			User:    sqlite.NewUserRepository(db),
			Project: sqlite.NewProjectRepository(db),
		}, db, nil
	default:
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return &repository.Repositories{
			User:    postgres.NewUserRepository(db),
			Project: postgres.NewProjectRepository(db),
		}, db, nil
	}
}

// openSessionStore builds the configured session backend.
func openSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, error) {
	if cfg.Store == "redis" {
		return session.NewRedisStore(ctx, cfg.Redis)
	}
	return session.NewMemoryStore(), nil
}

// openUploader builds the configured media storage backend. The second
// return value is the local upload directory, empty for cloud backends.
func openUploader(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (storage.Uploader, string, error) {
	if cfg.Backend == "s3" {
		up, err := s3.NewUploader(ctx, cfg.S3, logger)
		return up, "", err
	}
	up, err := local.NewUploader(cfg.UploadDir, cfg.PublicPath, logger)
	if err != nil {
		return nil, "", err
	}
	return up, up.BaseDir(), nil
}

// newRouter assembles the HTTP routes and middleware chain.
func newRouter(cfg *config.Config, logger zerolog.Logger, sessions *session.Manager, web *handler.WebHandler, localUploadDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(handler.RequestLogger(logger))

	m := metrics.New()
	if cfg.Metrics.Enabled {
		r.Use(m.Middleware)
		r.Get(cfg.Metrics.Path, m.Handler().ServeHTTP)
	}

	r.Get("/healthz", handler.HandleHealth)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir("./web/assets"))))
	if localUploadDir != "" {
		prefix := strings.TrimSuffix(cfg.Storage.PublicPath, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(localUploadDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(handler.SessionMiddleware(sessions, cfg.Session.CookieName, cfg.Session.CookieSecure, logger))
		web.RegisterRoutes(r)
	})

	return r
}
