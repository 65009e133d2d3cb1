package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ModelFactory builds a language model for one planning run.
type ModelFactory func(ctx context.Context, apiKey string) (llms.Model, error)

// NewModelFactory returns the factory for provider using modelName.
func NewModelFactory(provider, modelName string) (ModelFactory, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI, "":
		return func(_ context.Context, apiKey string) (llms.Model, error) {
			opts := []openai.Option{openai.WithToken(apiKey)}
			if modelName != "" {
				opts = append(opts, openai.WithModel(modelName))
			}
			llm, err := openai.New(opts...)
			if err != nil {
				return nil, fmt.Errorf("failed to create OpenAI model %s: %w", modelName, err)
			}
			return llm, nil
		}, nil
	case ProviderGemini:
		return func(ctx context.Context, apiKey string) (llms.Model, error) {
			return NewGeminiClient(ctx, apiKey, modelName)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", provider)
	}
}

// CredentialKey names the environment variable holding provider's API key.
func CredentialKey(provider string) string {
	if strings.EqualFold(provider, ProviderGemini) {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}
