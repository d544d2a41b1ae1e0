package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Client for Anthropic Claude
type AnthropicClient struct {
	client anthropic.Client
	config *Config
}

// NewAnthropicClient creates a client. config.BaseURL overrides the API endpoint.
func NewAnthropicClient(config *Config, apiKey string) *AnthropicClient {
	opts := []antoption.RequestOption{
		antoption.WithAPIKey(apiKey),
		antoption.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, antoption.WithBaseURL(config.BaseURL))
	}
	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		config: config,
	}
}

// Complete implements Client
func (c *AnthropicClient) Complete(ctx context.Context, req *Request) (string, error) {
	model, temperature, maxTokens, err := resolve(c.config, req)
	if err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", requestFailed(ProviderAnthropic, err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return checkContent(ProviderAnthropic, strings.Join(parts, ""))
}

// Close is a no-op; the SDK client holds no resources
func (c *AnthropicClient) Close() error {
	return nil
}
