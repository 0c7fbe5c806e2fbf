package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruslanmv/agenticai/core"
	"github.com/ruslanmv/agenticai/model"
)

// SynthesisConfig configures the synthesis agent. Model is required.
type SynthesisConfig struct {
	// Model is the generation provider performing the synthesis call.
	Model model.Model
	// MaxTokens is the default output budget when the task context does not
	// specify one. Defaults to 1000.
	MaxTokens int64
	// Temperature is the default sampling temperature. Defaults to 0.7.
	Temperature float64
}

// SynthesisPayload is the structured result of a synthesis execution.
type SynthesisPayload struct {
	Task          string `json:"task"`
	GeneratedText string `json:"generated_text"`
	Model         string `json:"model"`
	InputTokens   int64  `json:"input_tokens"`
	OutputTokens  int64  `json:"output_tokens"`
}

// SynthesisAgent turns a bundle of upstream source materials into a single
// generated report. The task string is the generation instruction; the task
// context may carry:
//
//	"sources"     []core.Source  source materials to synthesize
//	"max_tokens"  int            output token budget
//	"temperature" float64        sampling temperature
type SynthesisAgent struct {
	BaseAgent
	cfg SynthesisConfig
}

// NewSynthesisAgent constructs a synthesis agent. It fails when no model is
// provided.
func NewSynthesisAgent(name string, cfg SynthesisConfig) (*SynthesisAgent, error) {
	if name == "" {
		name = "crafter-agent"
	}
	if cfg.Model == nil {
		return nil, fmt.Errorf("agent %s: a model is required", name)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}

	return &SynthesisAgent{
		BaseAgent: NewBaseAgent(name, "Synthesizes source materials into a generated report"),
		cfg:       cfg,
	}, nil
}

// Initialize marks the agent ready; the model client owns its own
// connections.
func (a *SynthesisAgent) Initialize(_ context.Context) error {
	return a.MarkReady()
}

// Execute performs one synthesis call and returns a *SynthesisPayload.
func (a *SynthesisAgent) Execute(ctx context.Context, task string, taskCtx map[string]any) (any, error) {
	if err := a.BeginExecute(); err != nil {
		return nil, err
	}
	defer a.EndExecute()

	sources, _ := taskCtx["sources"].([]core.Source)

	maxTokens := a.cfg.MaxTokens
	if n, ok := intFromContext(taskCtx, "max_tokens"); ok && n > 0 {
		maxTokens = int64(n)
	}
	temperature := a.cfg.Temperature
	if t, ok := taskCtx["temperature"].(float64); ok && t > 0 {
		temperature = t
	}

	resp, err := a.cfg.Model.GenerateContent(ctx, model.Request{
		System:      synthesisSystemInstruction,
		Prompt:      buildSynthesisPrompt(task, sources),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis generation failed: %w", err)
	}

	return &SynthesisPayload{
		Task:          task,
		GeneratedText: resp.Text,
		Model:         a.cfg.Model.Info().Name,
		InputTokens:   resp.Usage.InputTokens,
		OutputTokens:  resp.Usage.OutputTokens,
	}, nil
}

// Cleanup drops the model reference.
func (a *SynthesisAgent) Cleanup(_ context.Context) error {
	a.MarkDisposed()
	return nil
}

const synthesisSystemInstruction = "You are a research assistant tasked with synthesizing information " +
	"from multiple sources into a comprehensive, well-structured report."

// buildSynthesisPrompt assembles the numbered source sections, the task and
// the output instructions into one prompt.
func buildSynthesisPrompt(task string, sources []core.Source) string {
	var sb strings.Builder

	if len(sources) > 0 {
		sb.WriteString("## Source Materials:\n")
		for i, source := range sources {
			sourceType := source.Type
			if sourceType == "" {
				sourceType = "source"
			}
			fmt.Fprintf(&sb, "\n### Source %d (%s):\n%s\n", i+1, sourceType, source.Content)
		}
	}

	fmt.Fprintf(&sb, "\n## Task:\n%s\n", task)
	sb.WriteString("\n## Instructions:\n" +
		"- Synthesize information from all provided sources\n" +
		"- Create a well-structured, comprehensive report\n" +
		"- Cite sources where appropriate\n" +
		"- Ensure accuracy and coherence\n" +
		"- Use clear, professional language\n" +
		"\n## Report:\n")

	return sb.String()
}

var _ core.Agent = (*SynthesisAgent)(nil)
