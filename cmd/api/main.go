package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urbanpulse/backend/internal/config"
	httpDelivery "github.com/urbanpulse/backend/internal/delivery/http"
	"github.com/urbanpulse/backend/internal/delivery/http/handler"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"github.com/urbanpulse/backend/internal/infrastructure/here"
	"github.com/urbanpulse/backend/internal/infrastructure/mlservice"
	"github.com/urbanpulse/backend/internal/infrastructure/openaq"
	"github.com/urbanpulse/backend/internal/infrastructure/openweather"
	"github.com/urbanpulse/backend/internal/infrastructure/tomtom"
	"github.com/urbanpulse/backend/internal/mockdata"
	"github.com/urbanpulse/backend/internal/pkg/logger"
	"github.com/urbanpulse/backend/internal/repository/cache"
	"github.com/urbanpulse/backend/internal/repository/postgres"
	"github.com/urbanpulse/backend/internal/usecase"
	"github.com/urbanpulse/backend/internal/worker"
	"github.com/urbanpulse/backend/internal/worker/refresh"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting UrbanPulse Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("city", cfg.City.Name),
		zap.Bool("demo_mode", cfg.DemoMode),
	)

	// 3. Connect to PostgreSQL when configured. The service runs fully
	// without it, history and simulation logs are just not recorded.
	var (
		db       *postgres.DB
		obsRepo  repository.ObservationRepository
		dbHealth handler.HealthChecker
	)
	if cfg.DatabaseConfigured() {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		obsRepo = postgres.NewObservationRepository(db, log)
		dbHealth = obsRepo
		log.Info("PostgreSQL connected")
	} else {
		log.Info("PostgreSQL not configured, history disabled")
	}

	// 4. Cache: Redis when configured, in-process memory otherwise.
	var (
		cacheRepo   repository.CacheRepository
		cacheHealth handler.HealthChecker
	)
	if cfg.RedisConfigured() {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewRedisRepository(redisClient)
		cacheHealth = redisClient
		log.Info("Redis connected")
	} else {
		cacheRepo = cache.NewMemoryRepository()
		log.Info("Redis not configured, using in-memory cache")
	}

	// 5. Upstream sources
	var trafficSource repository.TrafficSource
	switch cfg.Upstream.TrafficProvider {
	case "tomtom":
		trafficSource = tomtom.NewClient(cfg.Upstream.TomTomAPIKey, cfg.City.BBox, cfg.Upstream.RequestTimeout, log)
	default:
		trafficSource = here.NewClient(cfg.Upstream.HereAPIKey, cfg.City.BBox, cfg.Upstream.RequestTimeout, log)
	}
	airSource := openaq.NewClient(cfg.Upstream.OpenAQBaseURL, cfg.City.Name, cfg.Upstream.RequestTimeout, log)
	weatherSource := openweather.NewClient(cfg.Upstream.OpenWeatherKey, cfg.City.Name, cfg.Upstream.RequestTimeout, log)
	predictor := mlservice.NewClient(cfg.Predictor.ServiceURL, cfg.Predictor.RequestTimeout, log)

	log.Info("Upstream sources initialized",
		zap.String("traffic_provider", cfg.Upstream.TrafficProvider),
		zap.Bool("predictor_configured", cfg.Predictor.ServiceURL != ""),
	)

	// 6. Use cases
	generator := mockdata.NewGenerator(cfg.City)
	gatewayUC := usecase.NewGatewayUseCase(
		trafficSource,
		airSource,
		weatherSource,
		generator,
		cacheRepo,
		cfg.Cache.TTL,
		cfg.DemoMode,
		log,
	)
	bridge := usecase.NewPredictionBridge(predictor, log)
	simulationUC := usecase.NewSimulationUseCase(gatewayUC, bridge, obsRepo, log)

	log.Info("Use cases initialized")

	// 7. HTTP handlers and server
	dataHandler := handler.NewDataHandler(gatewayUC, log)
	simulationHandler := handler.NewSimulationHandler(simulationUC, log)
	historyHandler := handler.NewHistoryHandler(obsRepo, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthChecker{
		"database":  dbHealth,
		"cache":     cacheHealth,
		"predictor": mlHealthChecker{predictor},
	}, cfg.DemoMode)

	server := httpDelivery.NewServer(
		cfg,
		log,
		dataHandler,
		simulationHandler,
		historyHandler,
		healthHandler,
	)

	// 8. Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var manager *worker.Manager
	if cfg.Refresh.Enabled {
		manager = worker.NewManager(log)
		manager.Register(refresh.NewWorker(gatewayUC, obsRepo, cfg.Refresh.Interval, log))
		if err := manager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	if manager != nil {
		workerCancel()
		if err := manager.Stop(); err != nil {
			log.Error("Worker shutdown error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

// mlHealthChecker adapts the predictor client to the health endpoint.
type mlHealthChecker struct {
	predictor repository.Predictor
}

func (m mlHealthChecker) Health(ctx context.Context) error {
	type healther interface {
		Health(ctx context.Context) error
	}
	if h, ok := m.predictor.(healther); ok {
		return h.Health(ctx)
	}
	return nil
}
