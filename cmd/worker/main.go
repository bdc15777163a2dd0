package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/config"
	"github.com/listings-marketplace/internal/infrastructure/opencage"
	"github.com/listings-marketplace/internal/pkg/logger"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/repository/postgres"
	redisRepo "github.com/listings-marketplace/internal/repository/redis"
	"github.com/listings-marketplace/internal/usecase"
	"github.com/listings-marketplace/internal/worker"
	"github.com/listings-marketplace/internal/worker/geocode"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "listings-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Listing Re-geocode Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("delay", cfg.Seed.Delay),
		zap.Duration("poll_interval", cfg.Worker.PollInterval))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := redisRepo.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	listingRepo := postgres.NewListingRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Redis(), log)
	geocoder := opencage.NewClient(&cfg.Geocoder, log)

	// 6. Initialize use cases
	m := metrics.New(prometheus.DefaultRegisterer)
	enricher := usecase.NewGeocodeEnricher(geocoder, m, log)
	listingUC := usecase.NewListingUseCase(listingRepo, streamRepo, enricher, log)

	// 7. Initialize workers
	regeocodeWorker := geocode.NewRegeocodeWorker(streamRepo, listingUC, m, geocode.Options{
		ConsumerGroup: cfg.Worker.ConsumerGroup,
		BatchSize:     cfg.Worker.BatchSize,
		Delay:         cfg.Seed.Delay,
		PollInterval:  cfg.Worker.PollInterval,
		ClaimMinIdle:  cfg.Worker.ClaimMinIdle,
	}, log)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(regeocodeWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
