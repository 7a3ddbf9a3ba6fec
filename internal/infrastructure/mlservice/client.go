package mlservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	serviceURL string
	logger     *zap.Logger
}

// NewClient builds a Predictor backed by the external model service.
// An empty serviceURL means no model is deployed; every prediction
// then reports ErrPredictorUnavailable so callers take the heuristic
// path.
func NewClient(serviceURL string, timeout time.Duration, logger *zap.Logger) repository.Predictor {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		serviceURL: serviceURL,
		logger:     logger,
	}
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

func (c *client) PredictCongestion(ctx context.Context, rec domain.FeatureRecord) (float64, error) {
	if c.serviceURL == "" {
		return 0, repository.ErrPredictorUnavailable
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("mlservice: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", c.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("mlservice: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("mlservice: %v: %w", err, repository.ErrPredictorUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return 0, repository.ErrPredictorUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("mlservice: status %d: %w", resp.StatusCode, repository.ErrPredictorUnavailable)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("mlservice: decode response: %w", err)
	}

	if out.Prediction < 0 || out.Prediction > 1 {
		c.logger.Warn("model returned out-of-range congestion, clamping",
			zap.Float64("prediction", out.Prediction))
	}
	return out.Prediction, nil
}

// Health checks model service connectivity.
func (c *client) Health(ctx context.Context) error {
	if c.serviceURL == "" {
		return repository.ErrPredictorUnavailable
	}

	url := fmt.Sprintf("%s/health", c.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("mlservice: create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mlservice: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mlservice: health check returned status %d", resp.StatusCode)
	}
	return nil
}
