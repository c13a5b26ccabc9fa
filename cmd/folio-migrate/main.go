// Package main is the entry point for the Folio database migration tool.
// It applies the schema for the configured database backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adityarama/folio/internal/config"
	"github.com/adityarama/folio/internal/repository/postgres"
	"github.com/adityarama/folio/internal/repository/sqlite"
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

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("Folio Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		cfg := config.MustLoad(*configPath)
		if err := migrateUp(context.Background(), cfg, logger); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		logger.Info().Str("driver", cfg.Database.Driver).Msg("migrations applied")

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", flag.Arg(0))
		printUsage()
		os.Exit(1)
	}
}

// migrateUp applies all pending migrations for the configured driver.
func migrateUp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.Database.Driver == "sqlite" {
		if dir := filepath.Dir(cfg.Database.Path); dir != "" && cfg.Database.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(ctx)
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Migrate(ctx)
}

func printUsage() {
	fmt.Println(`Folio Migration Tool

Usage:
  folio-migrate [flags] <command>

Commands:
  up          Apply all pending migrations
  version     Print version information
  help        Show this help message

Flags:
  -config     Path to config file (FOLIO_* environment variables also apply)

Examples:
  folio-migrate up
  folio-migrate -config ./configs/config.yaml up`)
}
