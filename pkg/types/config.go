package types

import "time"

// HTTPConfig holds shared HTTP settings used by the search and completion clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default
	// (no timeout) in place.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lead-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchDepth is the retrieval tier requested from the search service.
type SearchDepth string

// DepthAdvanced is the tier every lead lookup requests.
const DepthAdvanced SearchDepth = "advanced"

// SearchConfig holds settings for the Tavily search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the Tavily API root (default "https://api.tavily.com").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey authenticates requests to the search service.
	APIKey string `json:"-" yaml:"-" mapstructure:"-"`
}

// CompletionConfig holds settings for the chat-completion client.
type CompletionConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Model is the chat model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL overrides the OpenAI API root. Empty uses the SDK default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// APIKey authenticates requests to the completion service.
	APIKey string `json:"-" yaml:"-" mapstructure:"-"`
}

// LogConfig selects the structured logger's level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "json" or "console" (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for one research run.
type Config struct {
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Completion CompletionConfig `json:"completion" yaml:"completion" mapstructure:"completion"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
