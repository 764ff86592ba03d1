// @title                      Todo API
// @version                    1.0
// @description                Multi-user todo lists with owner-scoped access.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/api"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/infrastructure/db/migrate"
	mongostore "github.com/todoapp/todo-api/internal/infrastructure/db/mongo"
	redisstore "github.com/todoapp/todo-api/internal/infrastructure/db/redis"
	"github.com/todoapp/todo-api/internal/infrastructure/db/sqlstore"
	"github.com/todoapp/todo-api/internal/pkg/config"
	"github.com/todoapp/todo-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "todo-api"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDev(),
		Service: "todo-api",
	})
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on environment")
	}

	gateway, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to bootstrap store")
	}
	defer closeResource(log, "store", closeStore)

	var sessions ports.SessionStore
	if cfg.SessionsEnabled() {
		client, err := redisstore.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to bootstrap redis")
		}
		defer closeResource(log, "redis", client)
		sessions = redisstore.NewSessionStore(client)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := api.NewRouter(api.Deps{
		JWT:        cfg.JWT,
		Gateway:    gateway,
		Sessions:   sessions,
		Logger:     log,
		Registerer: reg,
		Gatherer:   reg,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("driver", cfg.Store.Driver).
			Bool("sessions", sessions != nil).
			Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("api server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore builds the persistence gateway for the configured driver.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Gateway, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closer := mongoCloser{client: client}
		store := mongostore.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		return store, closer, nil
	default:
		client, err := sqlstore.Open(ctx, cfg.Store, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Store.AutoMigrate {
			sqlDB, err := client.SQL()
			if err == nil {
				err = migrate.Up(ctx, sqlDB, cfg.Store.Driver, log)
			}
			if err != nil {
				_ = client.Close()
				return nil, nil, err
			}
		}
		return client, client, nil
	}
}

type mongoCloser struct {
	client interface{ Disconnect(context.Context) error }
}

func (m mongoCloser) Close() error {
	return m.client.Disconnect(context.Background())
}

func closeResource(log zerolog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Str("resource", name).Msg("error closing resource")
	}
}
