package llm

import (
	"fmt"

	"threadflow/internal/config"
	"threadflow/internal/llm/anthropic"
	"threadflow/internal/llm/openai"
)

// ProviderFactory creates provider instances from configuration
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{config: cfg}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "openai" - GPT models via the chat completions API
//   - "anthropic" - Claude models via the Anthropic API
func (f *ProviderFactory) GetProvider(providerName string) (Provider, error) {
	switch providerName {
	case "openai":
		if f.config.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return openai.NewClient(f.config.OpenAIAPIKey, f.config.DefaultModel), nil

	case "anthropic":
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return anthropic.NewClient(f.config.AnthropicAPIKey, f.config.DefaultModel)

	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}
