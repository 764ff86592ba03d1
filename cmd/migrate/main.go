package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/infrastructure/db/migrate"
	"github.com/todoapp/todo-api/internal/infrastructure/db/sqlstore"
	"github.com/todoapp/todo-api/internal/pkg/config"
	"github.com/todoapp/todo-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	ctx := context.Background()
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version")
	version := flag.String("version", "", "target version for -cmd=version")
	flag.Parse()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resource not working: config: %v\n", err)
		return 1
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDev(),
		Service: "migrate",
	}).With().
		Str("env", cfg.Env).
		Str("cmd", *cmd).
		Str("driver", cfg.Store.Driver).
		Logger()

	if cfg.Store.Driver == config.DriverMongo {
		fmt.Fprintln(os.Stderr, "migrations only apply to sqlite and postgres; mongo indexes are created by the api on start")
		return 1
	}

	client, err := sqlstore.Open(ctx, cfg.Store, log)
	if !resourceReady(log, "database", err) {
		return 1
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	sqlDB, err := client.SQL()
	if !resourceReady(log, "sql database", err) {
		return 1
	}

	log.Info().Msg("migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, cfg.Store.Driver, log, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			return 1
		}

	case "version":
		if *version == "" {
			current, err := migrate.Version(ctx, sqlDB, cfg.Store.Driver, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "goose version failed: %v\n", err)
				return 1
			}
			fmt.Println("current version:", current)
			return 0
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, cfg.Store.Driver, log, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			return 1
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		return 1
	}
	return 0
}

func resourceReady(log zerolog.Logger, resource string, err error) bool {
	if err == nil {
		return true
	}
	log.Error().Err(err).Msgf("resource not working: %s", resource)
	return false
}
