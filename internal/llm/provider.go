// Package llm talks to the hosted models that write and review papers.
// Every vendor adapter returns schema-validated JSON through the same
// Provider interface, and decorators add retries, deadlines and logging.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends req and returns its content. With a Schema the
	// content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Request is a single prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema requests the vendor's structured output mode. Without it the
	// reply text is returned as-is.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds the single-turn request every caller in this module
// sends: a system prompt, one user message and a response schema.
func UserPrompt(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Schema is the JSON Schema a reply must satisfy. Name doubles as the cache
// key for the compiled schema and the vendor-side schema name, so it must
// be unique per Definition, e.g. "gate-questions-core".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any

	// Strict turns on vendor strict modes. Only set it when every property
	// is required and none are extra.
	Strict bool
}

// StopReason says why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a finished generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is the raw reply a vendor adapter hands to finish.
type completion struct {
	text  string
	usage Usage
	model string
	stop  StopReason
}

// finish turns a vendor reply into a Response. Fenced JSON is unwrapped and
// checked against the request schema. A reply that fails the check after
// hitting the token limit is reported as truncated rather than invalid.
func finish(req Request, c completion) (*Response, error) {
	content := extractJSON(c.text)
	if err := validateResponse(req.Schema, content); err != nil {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}

	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	if c.stop == "" {
		c.stop = StopEnd
	}
	return &Response{
		Content:    content,
		Usage:      c.usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}

// resolveModel maps a short alias to the vendor's model ID. Unknown names
// are taken to be model IDs already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
