// Package crew runs role-playing agents through an ordered list of tasks.
// Reasoning and tool use are delegated to langchaingo.
package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"
	"go.uber.org/zap"
)

// Process selects how a crew orders its tasks.
type Process int

const (
	Sequential Process = iota
)

const defaultMaxIterations = 5

var ErrNoTasks = errors.New("crew has no tasks")

// Tool is anything an agent may call while reasoning.
type Tool = tools.Tool

// Agent is a role with a goal, backed by a language model and optional tools.
type Agent struct {
	Role          string
	Goal          string
	Backstory     string
	Tools         []Tool
	LLM           llms.Model
	MaxIterations int
}

// Task is a unit of work assigned to one agent.
type Task struct {
	Description    string
	ExpectedOutput string
	Agent          *Agent
}

type TaskOutput struct {
	Description string
	Agent       string
	Raw         string
}

type Output struct {
	Raw   string
	Tasks []TaskOutput
}

type Crew struct {
	Tasks   []*Task
	Process Process
	Logger  *zap.Logger
}

// Kickoff runs every task in order. Each task sees the outputs of the tasks
// before it; the crew result is the last task's output.
func (c *Crew) Kickoff(ctx context.Context) (*Output, error) {
	if len(c.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	if c.Process != Sequential {
		return nil, fmt.Errorf("unsupported process %d", c.Process)
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	out := &Output{Tasks: make([]TaskOutput, 0, len(c.Tasks))}
	var prior []string
	for i, task := range c.Tasks {
		if task.Agent == nil || task.Agent.LLM == nil {
			return nil, fmt.Errorf("task %d: no agent or model assigned", i)
		}
		logger.Info("crew task started", zap.Int("task", i), zap.String("agent", task.Agent.Role))

		raw, err := task.Agent.Execute(ctx, task, strings.Join(prior, "\n\n"))
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, task.Agent.Role, err)
		}
		logger.Info("crew task finished", zap.Int("task", i), zap.String("agent", task.Agent.Role), zap.Int("chars", len(raw)))

		out.Tasks = append(out.Tasks, TaskOutput{Description: task.Description, Agent: task.Agent.Role, Raw: raw})
		prior = append(prior, raw)
		out.Raw = raw
	}
	return out, nil
}

// Execute performs task with the given context from earlier tasks.
func (a *Agent) Execute(ctx context.Context, task *Task, taskContext string) (string, error) {
	prompt := a.taskPrompt(task, taskContext)

	if len(a.Tools) == 0 {
		resp, err := a.LLM.GenerateContent(ctx, []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, a.persona()),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("model returned no choices")
		}
		return strings.TrimSpace(resp.Choices[0].Content), nil
	}

	maxIter := a.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	agent := agents.NewOneShotAgent(a.LLM, a.Tools, agents.WithMaxIterations(maxIter))
	executor := agents.NewExecutor(agent, agents.WithMaxIterations(maxIter))

	answer, err := chains.Run(ctx, executor, a.persona()+"\n\n"+prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (a *Agent) persona() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.", a.Role)
	if a.Backstory != "" {
		sb.WriteString(" " + a.Backstory)
	}
	if a.Goal != "" {
		sb.WriteString("\nYour personal goal is: " + a.Goal)
	}
	return sb.String()
}

func (a *Agent) taskPrompt(task *Task, taskContext string) string {
	var sb strings.Builder
	sb.WriteString("Current Task: " + task.Description)
	if task.ExpectedOutput != "" {
		sb.WriteString("\n\nThis is the expected criteria for your final answer: " + task.ExpectedOutput)
		sb.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")
	}
	if taskContext != "" {
		sb.WriteString("\n\nThis is the context you're working with:\n" + taskContext)
	}
	return sb.String()
}
