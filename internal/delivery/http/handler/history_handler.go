package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 24 * 7
)

// HistoryHandler serves persisted snapshots. obsRepo may be nil when
// the process runs without a database.
type HistoryHandler struct {
	obsRepo repository.ObservationRepository
	logger  *zap.Logger
}

func NewHistoryHandler(obsRepo repository.ObservationRepository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		obsRepo: obsRepo,
		logger:  logger,
	}
}

func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	dataDomain := c.Params("domain")
	switch dataDomain {
	case domain.DomainTraffic, domain.DomainAQI, domain.DomainWeather:
	default:
		return utils.SendError(c, apperrors.ErrUnknownDomain.WithDetails(map[string]interface{}{
			"domain": dataDomain,
		}))
	}

	if h.obsRepo == nil {
		return utils.SendError(c, apperrors.ErrDatabaseError.WithMessage("History persistence is not configured"))
	}

	hours := c.QueryInt("hours", defaultHistoryHours)
	if hours < 1 || hours > maxHistoryHours {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("hours must be between 1 and 168"))
	}

	to := time.Now().UTC()
	from := to.Add(-time.Duration(hours) * time.Hour)

	observations, err := h.obsRepo.GetHistory(c.Context(), dataDomain, from, to)
	if err != nil {
		h.logger.Error("Failed to load history",
			zap.String("domain", dataDomain), zap.Error(err))
		return utils.SendError(c, apperrors.ErrDatabaseError)
	}

	return utils.SendSuccess(c, observations, &utils.Meta{Total: len(observations)})
}
