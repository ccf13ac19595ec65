package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CompatibleClient targets any server speaking the OpenAI chat completions
// protocol at a custom base URL, such as a local model gateway.
type CompatibleClient struct {
	client openai.Client
	opts   Options
	logger *slog.Logger
}

// NewCompatibleClient creates a client for the endpoint at baseURL
func NewCompatibleClient(apiKey, baseURL string, opts Options) (*CompatibleClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required for an openai-compatible endpoint")
	}
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}

	// Each generation is attempted once.
	requestOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(apiKey))
	}

	return &CompatibleClient{
		client: openai.NewClient(requestOpts...),
		opts:   opts,
		logger: slog.Default().With("component", "compatible-llm", "model", opts.Model, "base_url", baseURL),
	}, nil
}

// Model returns the model name requests are sent to
func (c *CompatibleClient) Model() string {
	return c.opts.Model
}

// Generate sends prompt as a single user message
func (c *CompatibleClient) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.opts.Temperature),
	}
	if c.opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.opts.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("endpoint returned no choices")
	}

	text := completion.Choices[0].Message.Content
	c.logger.Debug("compatible completion",
		"prompt_length", len(prompt),
		"response_length", len(text),
		"tokens_used", completion.Usage.TotalTokens,
	)
	return text, nil
}
