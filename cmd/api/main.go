package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkhub/internal/api"
	"parkhub/internal/auth"
	"parkhub/internal/config"
	"parkhub/internal/database"
	"parkhub/internal/domain"
	"parkhub/internal/events"
	"parkhub/internal/logging"
	"parkhub/internal/metrics"
	"parkhub/internal/models"
	"parkhub/internal/queue"
	"parkhub/internal/service"
	"parkhub/internal/worker"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	dispatchQueue, cleanupQueue := buildQueue(cfg, &logger)
	defer cleanupQueue()

	bus := events.NewEventBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifyWorker := worker.NewNotificationWorker(db, dispatchQueue, worker.RetryPolicy{
		MaxRetries: cfg.Notifications.MaxRetries,
	}, time.Duration(cfg.Notifications.PollMs)*time.Millisecond, &logger)
	go notifyWorker.Start(ctx)

	reservations := service.NewReservations(db, dispatchQueue, bus, &logger)

	if cfg.Sweeper.Enabled {
		sweeper := service.NewSweeper(db, dispatchQueue, bus, cfg.Sweeper.Schedule, &logger)
		if err := sweeper.Start(ctx); err != nil {
			return fmt.Errorf("start sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	server := api.NewServer(cfg, api.Deps{
		Reservations:  reservations,
		Slots:         service.NewSlots(db, &logger),
		Vehicles:      service.NewVehicles(db, &logger),
		Notifications: service.NewNotifications(db, &logger),
		Exporter:      service.NewExport(db, cfg.Exports.Path, &logger),
		Tokens:        auth.NewManager(cfg.Auth),
		Pinger:        db,
	}, &logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownTimeout := time.Duration(cfg.HTTP.ShutdownSec) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	logger.Info().Msg("stopped cleanly")
	return nil
}

// buildQueue prefers Redis with an in-memory fallback; without a Redis
// address it runs purely in memory.
func buildQueue(cfg *config.Config, logger *zerolog.Logger) (domain.Queue, func()) {
	memory := queue.NewMemoryQueue(models.DispatchQueueSize)
	if cfg.Redis.Address == "" {
		logger.Warn().Msg("redis not configured, notification queue runs in memory")
		return memory, func() {}
	}

	client := queue.NewRedisClient(cfg.Redis)
	primary := queue.NewRedisQueue(client, cfg.Notifications.QueueKey, cfg.Notifications.DeadLetterKey)
	failover := queue.NewFailoverQueue(primary, memory, logger)
	return failover, func() { _ = queue.Close(client) }
}
