package llm

import (
	"context"
	"fmt"

	"github.com/reddycharan348/Gate-Exam/internal/store"
)

// NewProvider builds the configured provider and its decorators:
//
//	caller → retry → timeout → logging → vendor
//
// Each attempt is logged and timed on its own. events may be nil to skip
// recording.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := newVendor(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	return WithRetry(WithTimeout(p, cfg.Timeout), cfg.Retry), nil
}

func newVendor(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		m := NewMockProvider()
		m.Respond = cfg.MockResponder
		return m, nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}
