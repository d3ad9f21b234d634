package notion

import (
	"context"
	"time"

	"threadflow/internal/domain"
)

// FetchBriefs returns briefs from the database, optionally filtered by
// status. Rows whose title is empty are skipped; the limit applies to the
// extracted briefs, not the raw rows. Source ordering is preserved.
func (c *Client) FetchBriefs(ctx context.Context, statusFilter string, limit int) ([]domain.Brief, error) {
	var filter map[string]any
	if statusFilter != "" {
		filter = map[string]any{
			"property": "Status",
			"select":   map[string]any{"equals": statusFilter},
		}
	}

	pages, err := c.queryDatabase(ctx, filter)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("notion query returned rows", "rows", len(pages))

	briefs := make([]domain.Brief, 0, len(pages))
	skipped := 0
	for _, page := range pages {
		brief := extractBrief(page)
		if brief.Topic == "" {
			skipped++
			continue
		}
		briefs = append(briefs, brief)
		if limit > 0 && len(briefs) >= limit {
			break
		}
	}

	if skipped > 0 {
		c.logger.Debug("skipped briefs without topic", "skipped", skipped)
	}

	return briefs, nil
}

// extractBrief pulls the structured fields out of a Notion page's
// properties. Missing or differently-typed properties yield zero values,
// never errors; the database schema is owned by the user.
func extractBrief(page page) domain.Brief {
	brief := domain.Brief{PageID: page.ID}

	if t, err := time.Parse(time.RFC3339, page.CreatedTime); err == nil {
		brief.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, page.LastEditedTime); err == nil {
		brief.LastEditedTime = t
	}

	if prop, ok := page.Properties["Topic/Keyword"]; ok && prop.Type == "title" && len(prop.Title) > 0 {
		brief.Topic = prop.Title[0].PlainText
	}
	if prop, ok := page.Properties["Pillar"]; ok && prop.Type == "select" && prop.Select != nil {
		brief.Pillar = prop.Select.Name
	}
	if prop, ok := page.Properties["Platform"]; ok && prop.Type == "multi_select" {
		for _, opt := range prop.MultiSelect {
			brief.Platforms = append(brief.Platforms, opt.Name)
		}
	}
	if prop, ok := page.Properties["Post Type"]; ok && prop.Type == "multi_select" {
		for _, opt := range prop.MultiSelect {
			brief.PostTypes = append(brief.PostTypes, opt.Name)
		}
	}
	if prop, ok := page.Properties["Status"]; ok && prop.Type == "select" && prop.Select != nil {
		brief.Status = prop.Select.Name
	}

	return brief
}
