package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	city       string
	logger     *zap.Logger
}

// NewClient builds a weather source backed by the OpenWeather API.
func NewClient(apiKey, city string, timeout time.Duration, logger *zap.Logger) repository.WeatherSource {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		city:       city,
		logger:     logger,
	}
}

func (c *client) Available() bool {
	return c.apiKey != ""
}

func (c *client) Fetch(ctx context.Context) (*domain.WeatherReport, error) {
	q := url.Values{}
	q.Set("q", c.city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	reqURL := fmt.Sprintf("%s/weather?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("openweather: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("OpenWeather API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("openweather: status %d", resp.StatusCode)
	}

	var raw currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("openweather: decode response: %w", err)
	}

	report, err := Normalize(&raw, c.city)
	if err != nil {
		return nil, err
	}
	return report, nil
}
