package llm

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/rohankatakam/enhance-commits/internal/config"
	"github.com/rohankatakam/enhance-commits/internal/errors"
)

// Generator turns a prompt into text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Options tune a single provider client
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// NewGenerator builds the client for the configured provider. The config is
// expected to have passed Validate.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	opts := Options{
		Model:       cfg.ModelName(),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	logger := slog.Default().With("component", "llm")
	logger.Info("initializing llm client", "provider", cfg.LLM.Provider, "model", opts.Model)

	var (
		gen Generator
		err error
	)
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		gen, err = NewGeminiClient(ctx, cfg.LLM.GeminiAPIKey, "", opts)
	case config.ProviderOpenAI:
		gen, err = NewOpenAIClient(cfg.LLM.OpenAIAPIKey, "", opts)
	case config.ProviderCompatible:
		gen, err = NewCompatibleClient(cfg.LLM.OpenAIAPIKey, cfg.LLM.BaseURL, opts)
	default:
		return nil, errors.ConfigErrorf("unknown llm provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.SeverityCritical, "failed to create llm client")
	}
	return gen, nil
}

// ErrEmptyResponse is returned when the model answers with nothing but whitespace
var ErrEmptyResponse = stderrors.New("model returned an empty response")

// Enhance generates text for prompt and trims the reply. A blank reply is
// reported as ErrEmptyResponse so callers never write an empty message.
func Enhance(ctx context.Context, gen Generator, prompt string) (string, error) {
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", errors.ExternalErrorf(err, "%s generation failed", gen.Model())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.ExternalError(ErrEmptyResponse, "no enhancement produced")
	}
	return text, nil
}
