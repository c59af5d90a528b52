package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures a provider.
type Config struct {
	// Provider is "gemini", "openai", "anthropic", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single attempt. Zero disables the limit.
	Timeout time.Duration

	// MockResponder answers requests when Provider is "mock". When nil the
	// mock provider fails every request as unavailable.
	MockResponder func(Request) MockResponse
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor-qualified, e.g. "google/gemini-2.5-flash"
	BaseURL string
}

// RetryConfig shapes the backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendorKeys lists the vendors' own API key variables in discovery order.
var vendorKeys = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// DefaultConfig returns the defaults. A batch asks for up to 20 questions
// with worked solutions in one reply, so the timeout is generous.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-3-flash-preview"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 120 * time.Second,
	}
}

// DiscoverConfig returns defaults for the first vendor whose own API key
// variable is set, probing Gemini, OpenAI, Anthropic, then OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendorKeys {
		if k := os.Getenv(v.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.provider
			*cfg.apiKey(v.provider) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// apiKey points at the key field of the named vendor, or nil.
func (c *Config) apiKey(provider string) *string {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// HasKey reports whether the selected provider has credentials.
func (c Config) HasKey() bool {
	if c.Provider == "mock" {
		return true
	}
	k := c.apiKey(c.Provider)
	return k != nil && *k != ""
}

// Validate checks that the provider is known and has its key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	k := c.apiKey(c.Provider)
	if k == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *k == "" {
		return fmt.Errorf("GATE_EXAM_LLM_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
