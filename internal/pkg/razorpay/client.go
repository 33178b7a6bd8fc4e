package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/swiftride/swiftride-api/internal/pkg/gateway"
)

// Config holds Razorpay API configuration
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Client represents a Razorpay payment gateway client
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new Razorpay API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers an order with Razorpay and returns the provider
// order handle. Amount is in minor units (paise).
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*gateway.Order, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if strings.TrimSpace(c.config.KeyID) == "" || strings.TrimSpace(c.config.KeySecret) == "" {
		return nil, fmt.Errorf("razorpay config error: key credentials are empty")
	}

	payload, err := json.Marshal(createOrderRequest{
		Amount:         amountMinor,
		Currency:       currency,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode razorpay request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v1/orders"

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("razorpay api call failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("razorpay api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("razorpay api returned non-2xx status: %d, body: %s", resp.StatusCode, string(body))
	}

	var order gateway.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %w", err)
	}
	order.Raw = body

	return &order, nil
}

// KeyID returns the public key identifier the checkout client needs.
func (c *Client) KeyID() string {
	return c.config.KeyID
}
