package main

// @title Listings Marketplace API
// @version 1.0.0
// @description Объявления об аренде жилья: поиск, CRUD и геокодирование локаций через OpenCage.
// @description
// @description Основные возможности:
// @description - Поиск по подстроке и фильтр по категории
// @description - Создание и редактирование с нормализацией локации
// @description - Очередь повторного геокодирования для объявлений с координатами (0,0)

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/listings-marketplace/docs"
	"github.com/listings-marketplace/internal/config"
	httpDelivery "github.com/listings-marketplace/internal/delivery/http"
	"github.com/listings-marketplace/internal/delivery/http/handler"
	"github.com/listings-marketplace/internal/infrastructure/opencage"
	"github.com/listings-marketplace/internal/pkg/logger"
	"github.com/listings-marketplace/internal/pkg/metrics"
	"github.com/listings-marketplace/internal/repository/postgres"
	redisRepo "github.com/listings-marketplace/internal/repository/redis"
	"github.com/listings-marketplace/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "listings-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Listings Marketplace API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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
	log.Info("PostgreSQL connected")

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
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 7. Initialize repositories
	listingRepo := postgres.NewListingRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Redis(), log)
	geocoder := opencage.NewClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	enricher := usecase.NewGeocodeEnricher(geocoder, m, log)
	listingUC := usecase.NewListingUseCase(listingRepo, streamRepo, enricher, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	listingHandler := handler.NewListingHandler(listingUC, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": db.Health,
		"redis":    redisClient.Health,
	}, log)

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, listingHandler, healthHandler, registry)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
