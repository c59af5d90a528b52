package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterTitle identifies the app on OpenRouter's usage dashboard.
	openRouterTitle = "gate-exam"
)

// OpenRouterProvider reaches OpenRouter's OpenAI-compatible endpoint.
// Model IDs are vendor-qualified ("google/gemini-2.5-flash") and sent
// unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates an OpenRouter provider.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	conf.BaseURL = cfg.BaseURL
	if conf.BaseURL == "" {
		conf.BaseURL = defaultOpenRouterBaseURL
	}
	conf.HTTPClient = &http.Client{
		Transport: titleTransport{base: http.DefaultTransport, title: openRouterTitle},
	}
	return &OpenRouterProvider{OpenAIProvider: newOpenAIProvider(conf, cfg.Model)}, nil
}

// titleTransport adds OpenRouter's app attribution header.
type titleTransport struct {
	base  http.RoundTripper
	title string
}

func (t titleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(req)
}
