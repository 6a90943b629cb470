package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"portfolioctl/internal/config"
)

const defaultHTTPTimeout = 60 * time.Second

// HTTPDoer describes the HTTP client used by the Content API client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the remote content store's REST API. All calls pass through a
// shared token-bucket limiter so no command can outrun the remote service.
type Client struct {
	baseURL     string
	token       string
	authScheme  string
	contentType string
	http        HTTPDoer
	limiter     *rate.Limiter
}

// Option customizes the Content API client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLimiter overrides the default rate limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// NewClient constructs a Content API client from configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/"),
		token:       strings.TrimSpace(cfg.API.Token),
		authScheme:  cfg.API.AuthScheme,
		contentType: cfg.API.ContentType,
		http:        &http.Client{Timeout: time.Duration(cfg.API.RequestTimeout) * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(cfg.Pacing.RequestsPerSecond), cfg.Pacing.Burst),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.http == nil {
		client.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.limiter == nil {
		client.limiter = rate.NewLimiter(rate.Limit(2), 4)
	}
	return client
}

// StatusError reports a non-2xx response, carrying the body for diagnostics.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("content api: http %d", e.Code)
	}
	return fmt.Sprintf("content api: http %d: %s", e.Code, body)
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("content api: rate limit wait: %w", err)
	}
	req.Header.Set("Authorization", c.authorization())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content api: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("content api: read body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("content api: build request: %w", err)
	}
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("content api: decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("content api: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(encoded)))
	if err != nil {
		return fmt.Errorf("content api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("content api: decode response: %w", err)
	}
	return nil
}

func (c *Client) authorization() string {
	switch c.authScheme {
	case "bearer":
		return "Bearer " + c.token
	default:
		return "Basic " + c.token
	}
}
