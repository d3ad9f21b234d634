package threads

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Post is a previously published thread, used as style-analysis input.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type postsPage struct {
	Data []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	} `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

// FetchRecent returns up to limit of the profile's most recent posts,
// newest first, following pagination as needed. Posts without text
// (reposts, media-only) are skipped and do not count toward the limit.
func (c *Client) FetchRecent(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("threads: limit must be positive")
	}

	userID, err := c.getUserID(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, limit)
	after := ""
	for len(posts) < limit {
		query := url.Values{
			"fields": {"id,text,timestamp"},
			"limit":  {strconv.Itoa(limit)},
		}
		if after != "" {
			query.Set("after", after)
		}

		var page postsPage
		if err := c.get(ctx, "/"+userID+"/threads", query, &page); err != nil {
			return nil, fmt.Errorf("fetch recent posts: %w", err)
		}
		if len(page.Data) == 0 {
			break
		}

		for _, item := range page.Data {
			if item.Text == "" {
				continue
			}
			ts, _ := time.Parse(time.RFC3339, item.Timestamp)
			posts = append(posts, Post{ID: item.ID, Text: item.Text, Timestamp: ts})
			if len(posts) == limit {
				break
			}
		}

		if page.Paging.Cursors.After == "" || page.Paging.Next == "" {
			break
		}
		after = page.Paging.Cursors.After
	}

	c.logger.Debug("fetched recent threads", "count", len(posts))
	return posts, nil
}
