// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/tmc/langchaingo/llms"
	"google.golang.org/api/option"
)

// GeminiClient exposes a Gemini model through the langchaingo llms.Model interface.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

var _ llms.Model = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if !strings.HasPrefix(modelName, "models/") {
		modelName = "models/" + modelName
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GenerateContent sends the conversation to Gemini. System messages become the
// system instruction; the last message is sent, the rest form the chat history.
func (g *GeminiClient) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	system, history, last, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}

	// GenerativeModel carries per-call settings, so each call gets its own.
	model := g.client.GenerativeModel(g.modelName)
	applyCallOptions(model, options...)
	model.SystemInstruction = system

	chat := model.StartChat()
	chat.History = history
	resp, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return fromGeminiResponse(resp)
}

func (g *GeminiClient) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g, prompt, options...)
}

func applyCallOptions(model *genai.GenerativeModel, options ...llms.CallOption) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Temperature > 0 {
		model.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.TopP > 0 {
		model.SetTopP(float32(opts.TopP))
	}
	if len(opts.StopWords) > 0 {
		model.StopSequences = opts.StopWords
	}
}

func textOf(msg llms.MessageContent) string {
	var sb strings.Builder
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

func toGeminiContents(messages []llms.MessageContent) (*genai.Content, []*genai.Content, []genai.Part, error) {
	var (
		systemText []string
		turns      []*genai.Content
	)
	for _, msg := range messages {
		text := textOf(msg)
		switch msg.Role {
		case llms.ChatMessageTypeSystem:
			systemText = append(systemText, text)
		case llms.ChatMessageTypeAI:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(text)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(text)}})
		}
	}
	if len(turns) == 0 {
		return nil, nil, nil, errors.New("gemini: no user message to send")
	}

	var system *genai.Content
	if len(systemText) > 0 {
		system = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(systemText, "\n"))}}
	}
	last := turns[len(turns)-1]
	return system, turns[:len(turns)-1], last.Parts, nil
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (*llms.ContentResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}
	choices := make([]*llms.ContentChoice, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		var sb strings.Builder
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if textPart, ok := part.(genai.Text); ok {
					sb.WriteString(string(textPart))
				}
			}
		}
		choices = append(choices, &llms.ContentChoice{
			Content:    sb.String(),
			StopReason: cand.FinishReason.String(),
		})
	}
	return &llms.ContentResponse{Choices: choices}, nil
}
