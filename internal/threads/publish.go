package threads

import (
	"context"
	"fmt"
	"net/url"
)

// PublishedPost is the outcome of a successful publish.
type PublishedPost struct {
	ThreadID  string
	ThreadURL string
}

// Publish posts text to the authenticated profile. Text over the platform
// cap is rejected before any network call is made.
func (c *Client) Publish(ctx context.Context, text string) (*PublishedPost, error) {
	return c.publish(ctx, text, "")
}

// Reply posts text as a reply to an existing thread.
func (c *Client) Reply(ctx context.Context, replyToID, text string) (*PublishedPost, error) {
	if replyToID == "" {
		return nil, fmt.Errorf("threads: reply target id is required")
	}
	return c.publish(ctx, text, replyToID)
}

func (c *Client) publish(ctx context.Context, text, replyToID string) (*PublishedPost, error) {
	if text == "" {
		return nil, fmt.Errorf("threads: post text is empty")
	}
	if n := len([]rune(text)); n > MaxPostLength {
		return nil, fmt.Errorf("threads: post is %d characters, max %d", n, MaxPostLength)
	}

	userID, err := c.getUserID(ctx)
	if err != nil {
		return nil, err
	}

	// Publishing is two-step: create a media container, then publish it.
	form := url.Values{
		"media_type": {"TEXT"},
		"text":       {text},
	}
	if replyToID != "" {
		form.Set("reply_to_id", replyToID)
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, "/"+userID+"/threads", form, &container); err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	if container.ID == "" {
		return nil, fmt.Errorf("threads: container response had no id")
	}

	var published struct {
		ID string `json:"id"`
	}
	publishForm := url.Values{"creation_id": {container.ID}}
	if err := c.postForm(ctx, "/"+userID+"/threads_publish", publishForm, &published); err != nil {
		return nil, fmt.Errorf("publish container: %w", err)
	}
	if published.ID == "" {
		return nil, fmt.Errorf("threads: publish response had no id")
	}

	post := &PublishedPost{ThreadID: published.ID}

	// The permalink lookup is best effort; the post is already live.
	var detail struct {
		Permalink string `json:"permalink"`
	}
	if err := c.get(ctx, "/"+published.ID, url.Values{"fields": {"permalink"}}, &detail); err != nil {
		c.logger.Warn("could not fetch thread permalink", "thread_id", published.ID, "error", err)
	} else {
		post.ThreadURL = detail.Permalink
	}

	c.logger.Info("published to threads", "thread_id", post.ThreadID, "chars", len([]rune(text)))
	return post, nil
}
