package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stayhub-backend/internal/config"
)

// Client talks to the issue tracker's REST API
type Client struct {
	baseURL    string
	apiToken   string
	projectID  string
	httpClient *http.Client
}

func NewClient(cfg config.TrackerConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		apiToken:  cfg.APIToken,
		projectID: cfg.ProjectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// APIError carries the tracker's HTTP status for branch decisions
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker API error: status %d: %s", e.Status, e.Body)
}

// IsConflict reports a duplicate-resource rejection
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusConflict || e.Status == http.StatusUnprocessableEntity
}

// ===== LABELS =====

func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/labels", c.projectID), nil, &labels)
	return labels, err
}

func (c *Client) CreateLabel(ctx context.Context, name string) (Label, error) {
	var label Label
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/labels", c.projectID), map[string]string{"name": name}, &label)
	return label, err
}

// ===== ISSUES =====

func (c *Client) ListIssues(ctx context.Context, labelFilter string) ([]Issue, error) {
	path := fmt.Sprintf("/projects/%s/issues", c.projectID)
	if labelFilter != "" {
		path += "?label=" + url.QueryEscape(labelFilter)
	}

	var issues []Issue
	err := c.do(ctx, http.MethodGet, path, nil, &issues)
	return issues, err
}

func (c *Client) GetIssue(ctx context.Context, id string) (Issue, error) {
	var issue Issue
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/issues/%s", c.projectID, id), nil, &issue)
	return issue, err
}

func (c *Client) CreateIssue(ctx context.Context, issue Issue) (Issue, error) {
	var created Issue
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/issues", c.projectID), issue, &created)
	return created, err
}

func (c *Client) UpdateIssue(ctx context.Context, issue Issue) (Issue, error) {
	var updated Issue
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%s/issues/%s", c.projectID, issue.ID), issue, &updated)
	return updated, err
}
