package main

// @title POI Microservice API
// @version 1.0.0
// @description Микросервис для хранения точек интереса (POI) с поиском в радиусе на PostGIS.
// @description
// @description Основные возможности:
// @description - CRUD для POI с постраничным списком
// @description - Поиск POI в радиусе от точки с расстоянием в метрах

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/poi-microservice/docs"
	"github.com/poi-microservice/internal/config"
	httpDelivery "github.com/poi-microservice/internal/delivery/http"
	"github.com/poi-microservice/internal/delivery/http/handler"
	"github.com/poi-microservice/internal/domain/repository"
	"github.com/poi-microservice/internal/pkg/logger"
	"github.com/poi-microservice/internal/repository/postgres"
	redisRepo "github.com/poi-microservice/internal/repository/redis"
	"github.com/poi-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting POI Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("events_enabled", cfg.Events.Enabled),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. PostGIS and schema
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.EnsurePostGIS(ctx); err != nil {
		log.Fatal("Failed to enable PostGIS", zap.Error(err))
	}

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create schema", zap.Error(err))
	}

	version, err := db.PostGISVersion(ctx)
	if err != nil {
		log.Fatal("PostGIS is not available", zap.Error(err))
	}
	log.Info("Database schema ready", zap.String("postgis_version", version))

	// 5. Event publisher (optional)
	var (
		publisher   repository.EventPublisher = redisRepo.NewNoopPublisher()
		redisClient *redisRepo.Redis
	)
	if cfg.Events.Enabled {
		redisClient, err = redisRepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		publisher = redisRepo.NewStreamRepository(
			redisClient.Client(),
			cfg.Events.Stream,
			cfg.Events.MaxLen,
			log,
		)
		log.Info("Redis connected, POI events enabled", zap.String("stream", cfg.Events.Stream))
	}

	// 6. Initialize Repositories
	poiRepo := postgres.NewPOIRepository(db)

	// 7. Initialize Use Cases
	poiUC := usecase.NewPOIUseCase(poiRepo, db, publisher, log)

	// 8. Initialize HTTP Handlers
	poiHandler := handler.NewPOIHandler(poiUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, poiHandler)

	// 10. Start server in goroutine
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

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
