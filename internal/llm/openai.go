package llm

import (
	"context"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion APIs
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a client. config.BaseURL selects the endpoint.
func NewOpenAIClient(config *Config, apiKey string) *OpenAIClient {
	opts := []oaioption.RequestOption{
		oaioption.WithAPIKey(apiKey),
		oaioption.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, oaioption.WithBaseURL(config.BaseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}
}

// Complete implements Client
func (c *OpenAIClient) Complete(ctx context.Context, req *Request) (string, error) {
	model, temperature, maxTokens, err := resolve(c.config, req)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", requestFailed(ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return checkContent(ProviderOpenAI, "")
	}

	return checkContent(ProviderOpenAI, resp.Choices[0].Message.Content)
}

// Close is a no-op; the SDK client holds no resources
func (c *OpenAIClient) Close() error {
	return nil
}
