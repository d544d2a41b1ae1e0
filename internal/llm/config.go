// Package llm provides the completion client used for portfolio generation
// and updates, with Gemini, OpenAI-compatible, and Anthropic providers.
package llm

// Purpose selects which model a completion request uses
type Purpose string

const (
	// PurposeGenerate is for generating a full portfolio from a profile
	PurposeGenerate Purpose = "generate"
	// PurposeUpdate is for editing an existing portfolio
	PurposeUpdate Purpose = "update"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat completions API (Groq by default)
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// DefaultOpenAIBaseURL points the OpenAI-compatible provider at Groq
const DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"

// Sampling defaults per purpose
const (
	GenerateTemperature = 0.7
	UpdateTemperature   = 0.3
	DefaultMaxTokens    = 4000
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[Purpose]string
	// BaseURL overrides the provider endpoint (OpenAI-compatible and Anthropic only)
	BaseURL string
}

// DefaultConfig returns the default configuration (OpenAI-compatible via Groq)
func DefaultConfig() *Config {
	return DefaultConfigFor(ProviderOpenAI)
}

// DefaultConfigFor returns default models for a provider. Unknown providers
// get the OpenAI-compatible defaults.
func DefaultConfigFor(provider Provider) *Config {
	switch provider {
	case ProviderGemini:
		return &Config{
			Provider: ProviderGemini,
			Models: map[Purpose]string{
				PurposeGenerate: "gemini-2.5-flash",
				PurposeUpdate:   "gemini-2.5-flash-lite",
			},
		}
	case ProviderAnthropic:
		return &Config{
			Provider: ProviderAnthropic,
			Models: map[Purpose]string{
				PurposeGenerate: "claude-sonnet-4-5",
				PurposeUpdate:   "claude-haiku-4-5",
			},
		}
	default:
		return &Config{
			Provider: ProviderOpenAI,
			Models: map[Purpose]string{
				PurposeGenerate: "meta-llama/llama-4-maverick-17b-128e-instruct",
				PurposeUpdate:   "llama-3.3-70b-versatile",
			},
			BaseURL: DefaultOpenAIBaseURL,
		}
	}
}

// GetModel returns the model name for a purpose, falling back to the generate model
func (c *Config) GetModel(purpose Purpose) string {
	if model, ok := c.Models[purpose]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[PurposeGenerate]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a purpose
func (c *Config) WithModel(purpose Purpose, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[Purpose]string, len(c.Models)+1),
		BaseURL:  c.BaseURL,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[purpose] = model
	return newConfig
}
