package here

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

const defaultBaseURL = "https://traffic.ls.hereapi.com/traffic/6.3"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	bbox       string
	logger     *zap.Logger
}

// NewClient builds a traffic source backed by the HERE flow API.
// The bbox is "minLat,minLon,maxLat,maxLon".
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
	q.Set("apiKey", c.apiKey)
	q.Set("bbox", c.bbox)
	q.Set("responseattributes", "shp")

	reqURL := fmt.Sprintf("%s/flow.json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("here: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("here: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("HERE flow API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("here: status %d", resp.StatusCode)
	}

	var raw flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("here: decode response: %w", err)
	}

	fc := Normalize(&raw)
	c.logger.Debug("HERE flow normalized", zap.Int("features", len(fc.Features)))
	return fc, nil
}
