package crew

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// scriptedModel replays canned replies and records every prompt it receives.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	prompts []string
	err     error
}

func (m *scriptedModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sb strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				sb.WriteString(text.Text)
				sb.WriteString("\n")
			}
		}
	}
	m.prompts = append(m.prompts, sb.String())

	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return nil, errors.New("no scripted reply left")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

type recordingTool struct {
	inputs []string
	reply  string
}

func (t *recordingTool) Name() string        { return "hotel_lookup" }
func (t *recordingTool) Description() string { return "Looks up hotels for a query." }
func (t *recordingTool) Call(_ context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	return t.reply, nil
}

func TestKickoffPassesPriorOutputAsContext(t *testing.T) {
	model := &scriptedModel{replies: []string{"research notes: Hotel Alfama 90 USD", "  final shortlist  "}}
	researcher := &Agent{Role: "Researcher", Goal: "find hotels", Backstory: "An analyst", LLM: model}
	planner := &Agent{Role: "Planner", Goal: "shortlist hotels", LLM: model}

	c := &Crew{
		Tasks: []*Task{
			{Description: "Research Lisbon", ExpectedOutput: "hotel summary", Agent: researcher},
			{Description: "Plan the stay", ExpectedOutput: "top 10 deals", Agent: planner},
		},
		Process: Sequential,
	}

	out, err := c.Kickoff(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "final shortlist", out.Raw)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "Researcher", out.Tasks[0].Agent)
	assert.Equal(t, "research notes: Hotel Alfama 90 USD", out.Tasks[0].Raw)

	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[0], "You are Researcher. An analyst")
	assert.Contains(t, model.prompts[0], "Current Task: Research Lisbon")
	assert.NotContains(t, model.prompts[0], "context you're working with")
	assert.Contains(t, model.prompts[1], "This is the context you're working with:\nresearch notes: Hotel Alfama 90 USD")
	assert.Contains(t, model.prompts[1], "expected criteria for your final answer: top 10 deals")
}

func TestKickoffWrapsAgentError(t *testing.T) {
	model := &scriptedModel{err: errors.New("quota exceeded")}
	c := &Crew{Tasks: []*Task{{Description: "Research", Agent: &Agent{Role: "Researcher", LLM: model}}}}

	_, err := c.Kickoff(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 0 (Researcher)")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestKickoffRejectsEmptyCrew(t *testing.T) {
	_, err := (&Crew{}).Kickoff(context.Background())
	assert.ErrorIs(t, err, ErrNoTasks)
}

func TestKickoffRequiresModel(t *testing.T) {
	c := &Crew{Tasks: []*Task{{Description: "Research", Agent: &Agent{Role: "Researcher"}}}}
	_, err := c.Kickoff(context.Background())
	assert.Error(t, err)
}

func TestAgentWithToolsUsesExecutor(t *testing.T) {
	tool := &recordingTool{reply: "Hotel Alfama, 90 USD/night"}
	model := &scriptedModel{replies: []string{
		"Thought: I should look up hotels\nAction: hotel_lookup\nAction Input: hotels in Lisbon",
		"Thought: I now know the final answer\nFinal Answer: Hotel Alfama at 90 USD",
	}}
	agent := &Agent{Role: "Researcher", Goal: "find hotels", Tools: []Tool{tool}, LLM: model, MaxIterations: 3}

	got, err := agent.Execute(context.Background(), &Task{Description: "Research Lisbon", Agent: agent}, "")
	require.NoError(t, err)

	assert.Equal(t, "Hotel Alfama at 90 USD", got)
	assert.Equal(t, []string{"hotels in Lisbon"}, tool.inputs)
	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[0], "hotel_lookup")
	assert.Contains(t, model.prompts[1], "Hotel Alfama, 90 USD/night")
}
