package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/database"
	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/events"
	"github.com/sanlamamba/redbot/internal/maintenance"
	"github.com/sanlamamba/redbot/internal/notify"
	"github.com/sanlamamba/redbot/internal/query"
	"github.com/sanlamamba/redbot/internal/store"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	return nats.Connect(cfg.NATSURL, opts...)
}

func newClickHouseConnection(cfg *config.Config, logger *zap.Logger) (clickhouse.Conn, error) {
	db, err := database.New(context.Background(), database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		DialTimeout:     cfg.ClickHouseDialTimeout,
		QueryTimeout:    cfg.ClickHouseQueryTimeout,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	return db.Conn(), nil
}

func registerTracing(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	if !cfg.TracingEnabled {
		return
	}

	var shutdown func()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fn, err := telemetry.InitTracer(ctx, "redbot-processing", cfg.OTLPEndpoint)
			if err != nil {
				// Tracing is best effort, the service runs without it.
				logger.Warn("failed to initialize tracing", zap.Error(err))
				return nil
			}
			shutdown = fn
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown != nil {
				shutdown()
			}
			return nil
		},
	})
}

func appOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newClickHouseConnection,
			store.NewJobStore,
			notify.NewNotifier,
			query.NewService,
			maintenance.NewRunner,
			events.NewHandler,
		),
		fx.Invoke(
			registerTracing,
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
			func(runner *maintenance.Runner, lc fx.Lifecycle) {
				runner.Register(lc)
			},
		),
	)
}

func main() {
	app := fx.New(appOptions())

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
