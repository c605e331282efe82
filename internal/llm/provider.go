// Package llm abstracts the language-model providers Studium uses for
// exercise generation, free-text answer judging, and report writing.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction consumers talk to. All Studium
// services (generator, judge, reporter) depend on this interface, never
// on a vendor SDK.
type Provider interface {
	// Generate sends a prompt and returns the model's output. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and the returned Content is schema-validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes one model call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Studium's calls are single-turn,
	// so this usually holds one user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must satisfy.
	// When nil the Content is the raw text wrapped as json.RawMessage.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected back from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "study-items".
	Name string

	// Description guides the model toward the intended content.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
