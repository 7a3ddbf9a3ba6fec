package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"github.com/urbanpulse/backend/internal/pkg/validator"
	"github.com/urbanpulse/backend/internal/usecase"
	"github.com/urbanpulse/backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// SimulationHandler serves scenario runs and single-segment
// predictions.
type SimulationHandler struct {
	simulationUC *usecase.SimulationUseCase
	logger       *zap.Logger
}

func NewSimulationHandler(simulationUC *usecase.SimulationUseCase, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{
		simulationUC: simulationUC,
		logger:       logger,
	}
}

func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var req dto.SimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Request body must be valid JSON"))
	}

	result, err := h.simulationUC.Simulate(c.Context(), req)
	if err != nil {
		h.logger.Warn("Simulation rejected", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *SimulationHandler) Predict(c *fiber.Ctx) error {
	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Request body must be valid JSON"))
	}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Missing required feature fields"))
	}

	prediction, err := h.simulationUC.Predict(c.Context(), req)
	if err != nil {
		h.logger.Warn("Prediction failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PredictResponse{Prediction: prediction}, nil)
}
