// Package notion is the brief source: it queries a Notion database of
// content ideas and extracts structured briefs from page properties.
package notion

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAPIURL = "https://api.notion.com/v1"
	apiVersion    = "2022-06-28"
)

// Client queries one Notion database for content briefs.
type Client struct {
	client     *http.Client
	apiKey     string
	apiURL     string
	databaseID string
	logger     *slog.Logger
}

// NewClient creates a Notion client for the given database.
func NewClient(apiKey, databaseID string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("notion API key is required")
	}
	if databaseID == "" {
		return nil, fmt.Errorf("notion database ID is required")
	}

	return &Client{
		client:     &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		apiURL:     defaultAPIURL,
		databaseID: databaseID,
		logger:     logger,
	}, nil
}
