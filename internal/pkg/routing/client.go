package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds OpenRouteService API configuration
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the OpenRouteService matrix API
type Client struct {
	httpClient *http.Client
	config     Config
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openrouteservice.org"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// Matrix is a single origin-destination leg resolved by the routing API.
// Distance is in meters, duration in seconds.
type Matrix struct {
	DistanceMeters  float64
	DurationSeconds float64
}

type matrixRequest struct {
	Locations [][2]float64 `json:"locations"`
	Metrics   []string     `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]float64 `json:"distances"`
	Durations [][]float64 `json:"durations"`
}

// Matrix resolves driving distance and duration between two [lon,lat]
// coordinate pairs.
func (c *Client) Matrix(ctx context.Context, origin, destination [2]float64) (*Matrix, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return nil, fmt.Errorf("routing config error: api key is empty")
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: [][2]float64{origin, destination},
		Metrics:   []string{"distance", "duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode routing request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v2/matrix/driving-car"

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("routing api call failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("routing api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("routing api returned non-2xx status: %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed matrixResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse routing response: %w", err)
	}
	if len(parsed.Distances) < 1 || len(parsed.Distances[0]) < 2 ||
		len(parsed.Durations) < 1 || len(parsed.Durations[0]) < 2 {
		return nil, fmt.Errorf("routing response missing matrix cells")
	}

	return &Matrix{
		DistanceMeters:  parsed.Distances[0][1],
		DurationSeconds: parsed.Durations[0][1],
	}, nil
}
