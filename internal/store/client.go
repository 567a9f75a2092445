// Package store is the HTTP client for the external article store.
// The pipeline only reads the full article list and creates enhanced
// records; it never mutates or deletes existing records.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"enhancer/internal/core"
)

// Client talks to the article store's REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a store client for the given base URL
// (e.g. "http://localhost:8000/api").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// List retrieves all articles from the store.
func (c *Client) List(ctx context.Context) ([]core.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/articles", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned status %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var articles []core.Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("%w: failed to decode article list: %v", ErrStoreUnavailable, err)
	}

	return articles, nil
}

// Create persists a new enhanced record and returns it as stored.
func (c *Client) Create(ctx context.Context, draft core.EnhancedDraft) (core.Article, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to encode draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/articles", bytes.NewReader(body))
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return core.Article{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return core.Article{}, fmt.Errorf("%w: status %d: %s", ErrStoreRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	default:
		return core.Article{}, fmt.Errorf("%w: create returned status %d", ErrStoreUnavailable, resp.StatusCode)
	}

	var created core.Article
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return core.Article{}, fmt.Errorf("%w: failed to decode created article: %v", ErrStoreUnavailable, err)
	}

	return created, nil
}
