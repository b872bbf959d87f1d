// Package sezzle is the REST client for the Sezzle v2 gateway API.
package sezzle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"

	"sezzlegate/internal/shared/logger"
)

const (
	defaultTimeout = 15 * time.Second
	// Maximum response body size read from the gateway (1MB)
	maxResponseSize = 1 << 20
)

// RequestObserver receives the latency of every gateway call.
type RequestObserver interface {
	ObserveProviderRequest(operation string, statusCode int, duration time.Duration)
}

// BreakerSettings tunes the circuit breaker guarding the gateway.
type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

type ClientConfig struct {
	BaseURL     string
	Credentials AuthCredentials
	Timeout     time.Duration
	Breaker     BreakerSettings
}

// Client performs authenticated JSON calls against the gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*rawResponse]
	observer   RequestObserver
	logger     logger.Interface
}

type rawResponse struct {
	statusCode int
	body       []byte
}

func NewClient(cfg ClientConfig, observer RequestObserver, log logger.Interface) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	authClient := &http.Client{Timeout: cfg.Timeout}
	tokens := oauth2.ReuseTokenSource(nil, &authTokenSource{
		baseURL:     baseURL,
		credentials: cfg.Credentials,
		httpClient:  authClient,
	})

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: tokens,
				Base:   http.DefaultTransport,
			},
		},
		observer: observer,
		logger:   log.With("component", "sezzle.client"),
	}
	c.breaker = gobreaker.NewCircuitBreaker[*rawResponse](c.breakerSettings(cfg.Breaker))
	return c, nil
}

func (c *Client) breakerSettings(s BreakerSettings) gobreaker.Settings {
	threshold := s.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	return gobreaker.Settings{
		Name:        "sezzle",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.IsClientError()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warnw("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
}

// do sends body as JSON and decodes a 2xx answer into out. It returns the raw
// body so callers can keep it.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) ([]byte, error) {
	res, err := c.breaker.Execute(func() (*rawResponse, error) {
		return c.send(ctx, operation, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		return nil, err
	}

	if out != nil && len(res.body) > 0 {
		if err := json.Unmarshal(res.body, out); err != nil {
			return nil, fmt.Errorf("failed to decode sezzle %s response: %w", operation, err)
		}
	}
	return res.body, nil
}

func (c *Client) send(ctx context.Context, operation, method, path string, body any) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sezzle %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create sezzle %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, 0, start)
		c.logger.Errorw("sezzle request failed", "operation", operation, "error", err)
		return nil, fmt.Errorf("sezzle %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, start)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read sezzle %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(operation, resp.StatusCode, respBody)
		c.logger.Warnw("sezzle returned an error",
			"operation", operation,
			"status", resp.StatusCode,
			"message", apiErr.Message(),
		)
		return nil, apiErr
	}

	c.logger.Debugw("sezzle request completed",
		"operation", operation,
		"status", resp.StatusCode,
		"duration_ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10),
	)
	return &rawResponse{statusCode: resp.StatusCode, body: respBody}, nil
}

func (c *Client) observe(operation string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveProviderRequest(operation, status, time.Since(start))
	}
}
