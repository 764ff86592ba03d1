// Package migrate applies the embedded goose migrations for the relational
// store drivers.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/pkg/config"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// Dir returns the embedded migrations directory and goose dialect for driver.
func Dir(driver string) (dir, dialect string, err error) {
	switch driver {
	case config.DriverSQLite:
		return "migrations/sqlite", "sqlite3", nil
	case config.DriverPostgres:
		return "migrations/postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("migrate: driver %q has no sql migrations", driver)
	}
}

// Run executes a goose command (up, down, status, redo, ...) against db.
func Run(ctx context.Context, db *sql.DB, driver string, logger zerolog.Logger, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	return withGoose(driver, logger, func(dir string) error {
		if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	})
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, driver string, logger zerolog.Logger) error {
	return Run(ctx, db, driver, logger, "up")
}

// Version returns the current schema version recorded by goose.
func Version(ctx context.Context, db *sql.DB, driver string, logger zerolog.Logger) (int64, error) {
	var current int64
	err := withGoose(driver, logger, func(string) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		current = v
		return nil
	})
	return current, err
}

// MigrateToVersion migrates up or down until the schema is at targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, logger zerolog.Logger, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", targetVersion, err)
	}

	return withGoose(driver, logger, func(dir string) error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}

		switch {
		case current == target:
			return nil
		case current < target:
			if err := goose.UpToContext(ctx, db, dir, target); err != nil {
				return fmt.Errorf("goose up-to %d: %w", target, err)
			}
		default:
			if err := goose.DownToContext(ctx, db, dir, target); err != nil {
				return fmt.Errorf("goose down-to %d: %w", target, err)
			}
		}
		return nil
	})
}

func withGoose(driver string, logger zerolog.Logger, fn func(dir string) error) error {
	dir, dialect, err := Dir(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn(dir)
}
