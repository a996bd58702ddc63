package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizzer/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, log store.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		cfg.Groq.Timeout = cfg.Timeout
		base, err = NewGroqProvider(cfg.Groq)
	case "openai":
		cfg.OpenAI.Timeout = cfg.Timeout
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		cfg.Anthropic.Timeout = cfg.Timeout
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		cfg.Gemini.Timeout = cfg.Timeout
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a provider from QUIZZER_* env configuration,
// falling back to probing well-known API key variables when no provider
// is explicitly configured.
func NewProviderFromEnv(ctx context.Context, log store.RequestLog) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, log)
}
