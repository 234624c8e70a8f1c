package llm

import "context"

// Provider is the chat-completion abstraction the services talk to. The
// backing API is stateless between calls; callers resend the full transcript
// on every request.
type Provider interface {
	// Complete sends the system prompt plus transcript and returns the
	// assistant reply. When the request carries a Schema the provider is
	// put into forced-JSON output mode and the reply is validated against
	// the schema before being returned.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System is the system prompt, sent out-of-band where the provider
	// supports that (Anthropic, Gemini) and as a leading system message
	// otherwise.
	System string

	// Turns is the conversation history, oldest first. System turns are
	// not expected here; they travel in System.
	Turns []Turn

	// Schema, when set, forces JSON output conforming to the definition.
	Schema *Schema

	// MaxTokens caps the reply length. Zero means the provider default.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0.
	Temperature float64
}

// Turn is a single conversation message.
type Turn struct {
	Role    Role
	Content string
}

// Role is the turn author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure a forced-JSON reply must conform to.
type Schema struct {
	// Name identifies the schema for caching and provider-side naming.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response is the assistant reply.
type Response struct {
	// Content is the reply text. For schema requests this is the validated
	// JSON document.
	Content string

	// Usage reports token consumption when the provider supplies it.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
