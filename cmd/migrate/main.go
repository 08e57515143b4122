// AngelaMos | 2026
// main.go

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/carterperez-dev/garage-saas/internal/config"
	"github.com/carterperez-dev/garage-saas/migrations"
)

func main() {
	databaseURL := flag.String("database-url", "", "postgres url, defaults to DATABASE_URL or DB_*")
	command := flag.String("command", "up", "migration command (up, down, force, version)")
	flag.Parse()

	if err := run(*databaseURL, *command, flag.Args()); err != nil {
		slog.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(databaseURL, command string, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if databaseURL == "" {
		databaseURL = databaseURLFromEnv()
	}
	if databaseURL == "" {
		return errors.New("DATABASE_URL or DB_USER/DB_NAME is required")
	}

	connCfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	m, err := migrations.NewMigrator(stdlib.OpenDB(*connCfg))
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck // process exits right after

	switch command {
	case "up":
		slog.Info("applying migrations")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		slog.Info("reverting migrations")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "force":
		if len(args) != 1 {
			return errors.New("force needs a version argument")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse version %q: %w", args[0], err)
		}
		slog.Info("forcing migration version", "version", version)
		if err := m.Force(version); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		slog.Info("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	slog.Info("migration state", "version", version, "dirty", dirty)
	return nil
}

// databaseURLFromEnv only reads the database settings, so migrations run
// without the JWT and Redis settings the API requires.
func databaseURLFromEnv() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	port, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	db := config.DatabaseConfig{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     port,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
	return db.DSN()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
