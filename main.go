package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce/internal/config"
	"ecommerce/internal/database"
	"ecommerce/internal/handlers"
	"ecommerce/internal/repositories"
	"ecommerce/internal/services"
	"ecommerce/pkg/logger"
	"ecommerce/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	go func() {
		log.Info().Str("addr", cfg.App.Port).Msg("starting server")
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// setup opens the store, wires repositories, services and the optional
// catalog event client, and returns the app with a cleanup func.
func setup(ctx context.Context, cfg *config.Config, log *logger.Logger) (*fiber.App, func(), error) {
	authCfg, err := cfg.Auth()
	if err != nil {
		return nil, nil, fmt.Errorf("auth config: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database())
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("database ready")

	var (
		events services.EventPublisher
		mq     *rabbitmq.Client
	)
	if cfg.RabbitMQ.URL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL}, log.Component("rabbitmq"))
		if err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		events = mq
		if err := mq.ConsumeCatalogEvents(auditCatalogEvent(log.Component("audit"))); err != nil {
			log.Warn().Err(err).Msg("catalog audit consumer not started")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set, catalog events disabled")
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db, authCfg)

	app := handlers.NewApp(handlers.Services{
		Auth:          services.NewAuthService(userRepo, authCfg, log),
		Categories:    services.NewCategoryService(categoryRepo, log),
		Products:      services.NewProductService(productRepo, categoryRepo, events, log),
		EventsEnabled: mq != nil,
	}, log)

	cleanup := func() {
		if mq != nil {
			if err := mq.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close rabbitmq client")
			}
		}
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
	return app, cleanup, nil
}

// auditCatalogEvent logs every catalog event read back from the queue.
func auditCatalogEvent(log *logger.Logger) func(rabbitmq.Event) error {
	return func(e rabbitmq.Event) error {
		log.Info().
			Str("id", e.ID).
			Str("type", e.Type).
			Time("occurred_at", e.OccurredAt).
			RawJSON("payload", e.Payload).
			Msg("catalog event")
		return nil
	}
}
