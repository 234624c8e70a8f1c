package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration. Calls are made once per
// user action with no retry wrapper; transient failures surface immediately
// and the user retries manually.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var p Provider
	var err error

	switch cfg.Provider {
	case "groq", "openai":
		p, err = NewOpenAIProvider(cfg)
	case "anthropic":
		p, err = NewAnthropicProvider(cfg)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}
