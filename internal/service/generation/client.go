// Package generation turns prompts into validated post drafts and drives
// the three generation paths end to end.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"threadflow/internal/domain"
	"threadflow/internal/llm"
)

const (
	// MaxPostLength is the hard cap for normal posts.
	MaxPostLength = 500
	// MaxConnectionPostLength is the hard cap for connection posts.
	MaxConnectionPostLength = 200

	// MinPostLength is the floor below which output is considered noise.
	MinPostLength = 10

	defaultMaxTokens   = 200
	defaultTemperature = 0.7

	maxAttempts    = 3
	baseRetryDelay = 2 * time.Second
)

const systemPrompt = "You are a social media content creator specializing in engaging, " +
	"authentic Threads posts. Keep posts under 500 characters, conversational, and valuable."

// Client wraps an LLM provider with retries, output cleanup and validation.
type Client struct {
	provider llm.Provider
	logger   *slog.Logger
	sleep    func(time.Duration)
}

// NewClient creates a generation client over the given provider.
func NewClient(provider llm.Provider, logger *slog.Logger) *Client {
	return &Client{
		provider: provider,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Generate produces cleaned post text for a prompt. Transient provider
// failures are retried up to 3 times with a linearly growing delay. The
// returned text is quote-stripped, emoji-scrubbed and truncated to the
// 500-character cap.
func (c *Client) Generate(ctx context.Context, promptText string, maxTokens int, temperature float64) (string, error) {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := c.provider.Complete(ctx, systemPrompt, promptText, maxTokens, temperature)
		if err == nil {
			return c.clean(text), nil
		}

		lastErr = err
		c.logger.Warn("generation attempt failed",
			"provider", c.provider.Name(),
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
			c.sleep(baseRetryDelay * time.Duration(attempt))
		}
	}

	return "", fmt.Errorf("generate after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) clean(text string) string {
	text = strings.TrimSpace(text)
	text = stripWrappingQuotes(text)
	text = stripEmojis(text)
	if len([]rune(text)) > MaxPostLength {
		before := len([]rune(text))
		text = smartTruncate(text, MaxPostLength)
		c.logger.Debug("truncated generated post", "from", before, "to", len([]rune(text)))
	}
	return text
}

// Validate checks cleaned text against the content rules for the given
// length cap. It reports a closed failure kind plus a human-readable
// reason; it never returns an error.
func Validate(text string, maxLength int) domain.Validation {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Validation{Kind: domain.FailureEmpty, Reason: "Content is empty"}
	}

	n := len([]rune(text))
	if n > maxLength {
		return domain.Validation{
			Kind:   domain.FailureTooLong,
			Reason: fmt.Sprintf("Content too long (%d chars, max %d)", n, maxLength),
		}
	}
	if n < MinPostLength {
		return domain.Validation{Kind: domain.FailureTooShort, Reason: "Content too short"}
	}

	for _, r := range text {
		if isForbiddenSymbol(r) {
			return domain.Validation{
				Kind:   domain.FailureForbiddenSymbol,
				Reason: fmt.Sprintf("Content contains forbidden symbol %q", r),
			}
		}
	}

	if strings.HasPrefix(text, "Here's") && n < 50 {
		return domain.Validation{Kind: domain.FailureIncomplete, Reason: "Content appears incomplete"}
	}

	return domain.Validation{Valid: true, Kind: domain.FailureNone}
}
