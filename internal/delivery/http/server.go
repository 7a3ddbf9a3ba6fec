package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/delivery/http/handler"
	"github.com/urbanpulse/backend/internal/delivery/http/middleware"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP front end.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	dataHandler       *handler.DataHandler
	simulationHandler *handler.SimulationHandler
	historyHandler    *handler.HistoryHandler
	healthHandler     *handler.HealthHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	dataHandler *handler.DataHandler,
	simulationHandler *handler.SimulationHandler,
	historyHandler *handler.HistoryHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "UrbanPulse Backend",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		dataHandler:       dataHandler,
		simulationHandler: simulationHandler,
		historyHandler:    historyHandler,
		healthHandler:     healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.GetHealth)

	api.Get("/data/traffic", s.dataHandler.GetTraffic)
	api.Get("/data/aqi", s.dataHandler.GetAirQuality)
	api.Get("/data/weather", s.dataHandler.GetWeather)
	api.Get("/data/environment", s.dataHandler.GetEnvironment)

	api.Post("/simulate", s.simulationHandler.Simulate)
	api.Post("/predict", s.simulationHandler.Predict)

	api.Get("/history/:domain", s.historyHandler.GetHistory)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"error": appErr,
			})
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
