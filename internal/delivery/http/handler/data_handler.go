package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"github.com/urbanpulse/backend/internal/usecase"
	"go.uber.org/zap"
)

// DataHandler serves the per-domain snapshot endpoints. Responses are
// always 200; degraded upstreams surface through meta.source.
type DataHandler struct {
	gatewayUC *usecase.GatewayUseCase
	logger    *zap.Logger
}

func NewDataHandler(gatewayUC *usecase.GatewayUseCase, logger *zap.Logger) *DataHandler {
	return &DataHandler{
		gatewayUC: gatewayUC,
		logger:    logger,
	}
}

func (h *DataHandler) GetTraffic(c *fiber.Ctx) error {
	start := time.Now()
	fc, source := h.gatewayUC.Traffic(c.Context())
	return utils.SendSuccess(c, fc, &utils.Meta{
		Total:    len(fc.Features),
		Source:   source,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func (h *DataHandler) GetAirQuality(c *fiber.Ctx) error {
	start := time.Now()
	fc, source := h.gatewayUC.AirQuality(c.Context())
	return utils.SendSuccess(c, fc, &utils.Meta{
		Total:    len(fc.Features),
		Source:   source,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func (h *DataHandler) GetWeather(c *fiber.Ctx) error {
	start := time.Now()
	report, source := h.gatewayUC.Weather(c.Context())
	return utils.SendSuccess(c, report, &utils.Meta{
		Source:   source,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

func (h *DataHandler) GetEnvironment(c *fiber.Ctx) error {
	start := time.Now()
	env := h.gatewayUC.Environment(c.Context())
	return utils.SendSuccess(c, env, &utils.Meta{
		Source:   env.Source,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
