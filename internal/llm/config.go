package llm

import (
	"fmt"
	"os"
)

// Groq exposes an OpenAI-compatible API; it is the default backend because
// the tutor and quiz prompts were tuned against llama3 there.
const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-8b-8192"
)

// Config selects and configures a chat-completion backend.
type Config struct {
	// Provider is one of "groq", "openai", "anthropic", "gemini", "mock".
	Provider string `yaml:"provider"`
	// APIKey authenticates against the selected provider. Usually supplied
	// via environment, not the YAML file.
	APIKey string `yaml:"api_key"`
	// Model overrides the provider default model ID.
	Model string `yaml:"model"`
	// BaseURL overrides the endpoint for OpenAI-compatible backends.
	BaseURL string `yaml:"base_url"`
}

// FromEnv overlays standard environment variables onto the config:
// STUDYMATE_LLM_PROVIDER and STUDYMATE_LLM_MODEL, plus the conventional
// per-provider key variables.
func (c Config) FromEnv() Config {
	if p := os.Getenv("STUDYMATE_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}
	if m := os.Getenv("STUDYMATE_LLM_MODEL"); m != "" {
		c.Model = m
	}
	if c.Provider == "" {
		c.Provider = "groq"
	}
	if c.APIKey == "" {
		switch c.Provider {
		case "groq":
			c.APIKey = os.Getenv("GROQ_API_KEY")
		case "openai":
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini":
			c.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	return c
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq", "openai", "anthropic", "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("API key is required for the %s provider", c.Provider)
		}
	case "mock":
		// No key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
