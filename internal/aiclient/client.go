package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"stayhub-backend/internal/config"
	"stayhub-backend/pkg/logger"
)

// Client wraps the AI provider's HTTP API. Provider calls are the only
// place in the codebase with retry logic: the provider throttles and
// flakes, while everything else fails fast.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg config.AIConfig) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		log: logger.With("aiclient"),
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Post sends a JSON request with exponential backoff on 429 and 5xx
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("AI provider is not configured")
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(1<<uint(attempt-2)) * time.Second
			c.log.Warn().
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying AI provider call")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retryable, err := c.doOnce(ctx, path, bodyJSON, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}

	return fmt.Errorf("AI provider call failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) doOnce(ctx context.Context, path string, bodyJSON []byte, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyJSON))
	if err != nil {
		return false, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("AI provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, fmt.Errorf("AI provider returned status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("AI provider rejected request: status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return false, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return false, nil
}
