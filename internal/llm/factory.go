package llm

import (
	"cmp"
	"context"
	"fmt"

	"github.com/abhisek/lingodeck/internal/store"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI, ProviderOpenRouter:
		base, err = newOpenAICompatible(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> retry -> logging -> base
	logged := WithLogging(base, eventRepo)
	retried := WithRetryTimeout(logged, cfg.Retry, cfg.Timeout)

	return retried, nil
}

// newOpenAICompatible builds the OpenAI client for OpenAI itself or for
// OpenRouter, which serves the same API under its own base URL and passes
// model IDs through untouched.
func newOpenAICompatible(cfg Config) (*OpenAIProvider, error) {
	if cfg.Provider != ProviderOpenRouter {
		return NewOpenAIProvider(cfg.OpenAI)
	}
	or := cfg.OpenRouter
	if or.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	return newOpenAIClient(ProviderOpenRouter, OpenAIConfig{
		APIKey:  or.APIKey,
		Model:   or.Model,
		BaseURL: cmp.Or(or.BaseURL, defaultOpenRouterBaseURL),
	}), nil
}
