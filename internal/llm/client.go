package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Request is a single chat completion: one system prompt and one user prompt.
// Zero Temperature and MaxTokens take the purpose defaults.
type Request struct {
	System      string
	Prompt      string
	Purpose     Purpose
	Temperature float64
	MaxTokens   int
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete returns the raw text of the model's reply
	Complete(ctx context.Context, req *Request) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey), nil
	case ProviderOpenAI, "":
		return NewOpenAIClient(config, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// resolve fills purpose defaults and looks up the model
func resolve(config *Config, req *Request) (model string, temperature float64, maxTokens int, err error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = PurposeGenerate
	}

	model = config.GetModel(purpose)
	if model == "" {
		return "", 0, 0, fmt.Errorf("no model configured for purpose %s", purpose)
	}

	temperature = req.Temperature
	if temperature == 0 {
		temperature = GenerateTemperature
		if purpose == PurposeUpdate {
			temperature = UpdateTemperature
		}
	}

	maxTokens = req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return model, temperature, maxTokens, nil
}

// requestFailed wraps a provider error as a completion UpstreamError
func requestFailed(provider Provider, err error) error {
	return &types.UpstreamError{
		Service: types.ServiceCompletion,
		Message: fmt.Sprintf("%s completion request failed", provider),
		Cause:   err,
	}
}

// checkContent rejects replies with no usable text
func checkContent(provider Provider, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &types.UpstreamError{
			Service: types.ServiceCompletion,
			Message: fmt.Sprintf("%s returned empty response", provider),
		}
	}
	return text, nil
}
