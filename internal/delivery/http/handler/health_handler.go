package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker is any dependency that can report liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports overall service status plus the state of each
// optional dependency. The service itself is healthy as long as it can
// answer; degraded dependencies only change the component map.
type HealthHandler struct {
	components map[string]HealthChecker
	demoMode   bool
}

func NewHealthHandler(components map[string]HealthChecker, demoMode bool) *HealthHandler {
	return &HealthHandler{
		components: components,
		demoMode:   demoMode,
	}
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string, len(h.components))
	for name, checker := range h.components {
		if checker == nil {
			components[name] = "disabled"
			continue
		}
		if err := checker.Health(ctx); err != nil {
			components[name] = "unavailable"
			continue
		}
		components[name] = "ok"
	}

	return c.JSON(fiber.Map{
		"status":     "healthy",
		"demo_mode":  h.demoMode,
		"components": components,
		"time":       time.Now().UTC(),
	})
}
