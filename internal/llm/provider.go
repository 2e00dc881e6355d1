package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured content from a prompt. Deck generation is
// the only caller today; it always sends a Schema.
type Provider interface {
	// Generate runs req. When req.Schema is set the returned Content has
	// already been validated against it, and a mismatch is reported as
	// *ErrInvalidResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for JSON output through the provider's structured output
	// mode. Nil means free text wrapped as JSON.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero is deterministic.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON schema for structured output. Name is also the key
// the compiled schema is shared under, so two schemas must not reuse one.
type Schema struct {
	Name        string // kebab-case, e.g. "vocab-deck"
	Description string
	Definition  map[string]any
}

// StopReason is why the model stopped, normalized across providers.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that served the request, may differ from ModelID
	StopReason StopReason
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
