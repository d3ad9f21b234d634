package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Wire types for the database query endpoint. Only the property shapes the
// brief schema uses are modeled.
type page struct {
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	Properties     map[string]property `json:"properties"`
}

type property struct {
	Type        string         `json:"type"`
	Title       []richText     `json:"title,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// queryDatabase pages through the database query endpoint until the cursor
// is exhausted.
func (c *Client) queryDatabase(ctx context.Context, filter map[string]any) ([]page, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.apiURL, c.databaseID)

	var results []page
	var cursor *string

	for {
		payload := map[string]any{}
		if filter != nil {
			payload["filter"] = filter
		}
		if cursor != nil {
			payload["start_cursor"] = *cursor
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("notion: marshal query: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("notion: create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Notion-Version", apiVersion)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("notion: request failed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("notion: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(data)))
		}

		var parsed queryResponse
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("notion: decode response: %w", err)
		}

		results = append(results, parsed.Results...)

		if !parsed.HasMore || parsed.NextCursor == nil {
			break
		}
		cursor = parsed.NextCursor
	}

	return results, nil
}
