package ai

import (
	"context"
	"testing"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestToGeminiContents(t *testing.T) {
	system, history, last, err := toGeminiContents([]llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "You are a travel planner."),
		llms.TextParts(llms.ChatMessageTypeHuman, "Find hotels in Lisbon"),
		llms.TextParts(llms.ChatMessageTypeAI, "Which dates?"),
		llms.TextParts(llms.ChatMessageTypeHuman, "June 1 to June 5"),
	})
	require.NoError(t, err)

	require.NotNil(t, system)
	assert.Equal(t, []genai.Part{genai.Text("You are a travel planner.")}, system.Parts)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("June 1 to June 5")}, last)
}

func TestToGeminiContentsNeedsUserTurn(t *testing.T) {
	_, _, _, err := toGeminiContents([]llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "system only"),
	})
	assert.Error(t, err)
}

func TestApplyCallOptions(t *testing.T) {
	model := &genai.GenerativeModel{}
	applyCallOptions(model, llms.WithTemperature(0.3), llms.WithMaxTokens(512), llms.WithStopWords([]string{"\nObservation:"}))

	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.3, *model.Temperature, 1e-6)
	require.NotNil(t, model.MaxOutputTokens)
	assert.Equal(t, int32(512), *model.MaxOutputTokens)
	assert.Equal(t, []string{"\nObservation:"}, model.StopSequences)
}

func TestFromGeminiResponse(t *testing.T) {
	resp, err := fromGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []genai.Part{genai.Text("Hotel "), genai.Text("Alfama")}},
			FinishReason: genai.FinishReasonStop,
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "Hotel Alfama", resp.Choices[0].Content)

	_, err = fromGeminiResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestNewModelFactory(t *testing.T) {
	_, err := NewModelFactory("anthropic", "")
	assert.Error(t, err)

	factory, err := NewModelFactory(ProviderOpenAI, "gpt-4o-mini")
	require.NoError(t, err)
	model, err := factory(context.Background(), "sk-test")
	require.NoError(t, err)
	assert.NotNil(t, model)

	assert.Equal(t, "GEMINI_API_KEY", CredentialKey("Gemini"))
	assert.Equal(t, "OPENAI_API_KEY", CredentialKey(ProviderOpenAI))
}
