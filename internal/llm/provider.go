// Package llm abstracts the text-generation model behind a provider
// interface so the generation pipeline is not tied to one vendor.
package llm

import "context"

// Provider generates text for a prompt. Implementations are synchronous
// single-shot completions (posts are short; nothing here streams) and may
// return transient network/service errors; retrying is the caller's
// responsibility, not the provider's.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error)
}
