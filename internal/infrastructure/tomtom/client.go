package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.tomtom.com/traffic/services/4"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	bbox       string
	logger     *zap.Logger
}

// NewClient builds a traffic source backed by the TomTom flow service.
func NewClient(apiKey, bbox string, timeout time.Duration, logger *zap.Logger) repository.TrafficSource {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		bbox:       bbox,
		logger:     logger,
	}
}

func (c *client) Available() bool {
	return c.apiKey != ""
}

func (c *client) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("bbox", c.bbox)

	reqURL := fmt.Sprintf("%s/flowSegmentData/relative/json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tomtom: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tomtom: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("TomTom flow API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("tomtom: status %d", resp.StatusCode)
	}

	var raw flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tomtom: decode response: %w", err)
	}

	fc := Normalize(&raw)
	c.logger.Debug("TomTom flow normalized", zap.Int("features", len(fc.Features)))
	return fc, nil
}
