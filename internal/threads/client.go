// Package threads talks to the Threads Graph API: publishing finished
// posts and reading the account's recent posts for style analysis.
package threads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiVersion    = "v1.0"
	defaultAPIURL = "https://graph.threads.net/" + apiVersion

	// MaxPostLength is the hard character cap the platform enforces.
	MaxPostLength = 500
)

// Client is an authenticated Threads Graph API client.
type Client struct {
	client      *http.Client
	accessToken string
	apiURL      string
	logger      *slog.Logger

	// cached /me id; the API key is bound to one profile
	userID string
}

// NewClient creates a Threads client.
func NewClient(accessToken string, logger *slog.Logger) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("threads access token is required")
	}

	return &Client{
		client:      &http.Client{Timeout: 30 * time.Second},
		accessToken: accessToken,
		apiURL:      defaultAPIURL,
		logger:      logger,
	}, nil
}

// UserInfo identifies the authenticated profile.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GetUserInfo returns the authenticated profile's id and username.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.get(ctx, "/me", url.Values{"fields": {"id,username"}}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getUserID(ctx context.Context) (string, error) {
	if c.userID != "" {
		return c.userID, nil
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, "/me", nil, &payload); err != nil {
		return "", err
	}
	if payload.ID == "" {
		return "", fmt.Errorf("threads: /me returned no user id")
	}
	c.userID = payload.ID
	return c.userID, nil
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("threads: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("threads: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("threads: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("threads: decode response: %w", err)
	}
	return nil
}

// postForm performs an authenticated POST with form values and decodes the
// JSON response.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("threads: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("threads: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("threads: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("threads: decode response: %w", err)
	}
	return nil
}
