package model

import (
	"context"
	"fmt"
	"strings"
)

// Request captures the normalized input for one generation call.
type Request struct {
	// System sets the system instruction, if any.
	System string `json:"system,omitempty"`
	// Prompt is the user prompt to complete.
	Prompt string `json:"prompt"`
	// MaxTokens bounds the generated output. Zero means provider default.
	MaxTokens int64 `json:"max_tokens,omitempty"`
	// Temperature controls sampling. Negative means provider default.
	Temperature float64 `json:"temperature,omitempty"`
}

// Usage captures token accounting for a response.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Response is the final output of a generation call.
type Response struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"` // "stop", "length", etc.
	Usage        Usage  `json:"usage"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface the synthesis agent requires from a
// generation provider. Implementations must be safe for concurrent use.
type Model interface {
	// GenerateContent performs one bounded generation call.
	GenerateContent(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// It returns canned responses keyed by a substring of the prompt, falling
// back to a deterministic echo.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion returned whenever
// the prompt contains the given substring.
func (m *MockModel) AddResponse(promptContains, response string) {
	m.responses[promptContains] = response
}

// FailWith makes every subsequent call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// GenerateContent implements Model.
func (m *MockModel) GenerateContent(ctx context.Context, req Request) (*Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := ""
	for needle, resp := range m.responses {
		if strings.Contains(req.Prompt, needle) {
			text = resp
			break
		}
	}
	if text == "" {
		text = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}

	return &Response{
		Text:         text,
		FinishReason: "stop",
		Usage: Usage{
			InputTokens:  int64(len(strings.Fields(req.Prompt))),
			OutputTokens: int64(len(strings.Fields(text))),
		},
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
