package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	city       string
	logger     *zap.Logger
}

// NewClient builds an air-quality source backed by the OpenAQ API.
// OpenAQ needs no credential on the free tier, so the source is always
// available.
func NewClient(baseURL, city string, timeout time.Duration, logger *zap.Logger) repository.AirQualitySource {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		city:       city,
		logger:     logger,
	}
}

func (c *client) Available() bool {
	return true
}

func (c *client) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	q := url.Values{}
	q.Set("city", c.city)
	q.Set("limit", strconv.Itoa(100))

	reqURL := fmt.Sprintf("%s/latest?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("openaq: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openaq: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("OpenAQ API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("openaq: status %d", resp.StatusCode)
	}

	var raw latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("openaq: decode response: %w", err)
	}

	fc := Normalize(&raw)
	c.logger.Debug("OpenAQ response normalized", zap.Int("features", len(fc.Features)))
	return fc, nil
}
