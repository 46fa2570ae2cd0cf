package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/infrastructure/config"
	"habitat/internal/infrastructure/database"
	"habitat/internal/infrastructure/repository"
	"habitat/internal/infrastructure/scheduler"
	"habitat/internal/infrastructure/senders"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/services/markdown"
)

// A standalone retry worker: it runs the same dispatch pipeline as the
// server but only feeds it from the retry sweep, so stuck deliveries drain
// even when the API process is down.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting notification retry worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	residentRepo := repository.NewResidentRepository(database.Get())
	deliveryRepo := repository.NewDeliveryRepository(database.Get())

	registry := dispatch.NewSenderRegistry(
		senders.NewEmailSender(cfg.Email, residentRepo, markdown.NewService(), log),
		senders.NewSMSSender(cfg.SMS, residentRepo, log),
		senders.NewChatSender(cfg.Chat, residentRepo, log),
		senders.NewPushSender(cfg.Push, residentRepo, log),
	)

	dispatcher := dispatch.NewDispatcher(deliveryRepo, registry, dispatch.Config{
		Workers:    cfg.Notify.Workers,
		QueueSize:  cfg.Notify.QueueSize,
		MaxRetries: cfg.Notify.MaxRetries,
		SweepBatch: cfg.Notify.SweepBatchSize,
	}, log)

	retryScheduler := scheduler.NewRetryScheduler(
		dispatcher,
		time.Duration(cfg.Notify.SweepIntervalSecs)*time.Second,
		log,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retryScheduler.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	retryScheduler.Stop()

	log.Infow("notification retry worker stopped")
}
