package core

import "time"

// Status classifies the outcome of one agent execution or workflow step.
type Status string

const (
	// StatusSuccess means the execution completed and produced a payload.
	StatusSuccess Status = "success"
	// StatusFailure means the execution ran and failed, or could not be
	// dispatched at all.
	StatusFailure Status = "failure"
	// StatusSkipped means a workflow step was never executed because an
	// upstream dependency did not succeed.
	StatusSkipped Status = "skipped"
)

// ExecutionRequest describes one unit of work addressed to a registered
// agent. Requests are immutable once issued.
type ExecutionRequest struct {
	// Agent is the identity of the target agent.
	Agent string
	// Task is the free form task description or query.
	Task string
	// Context carries optional structured parameters for the execution.
	Context map[string]any
}

// ExecutionResult is the structured outcome of one agent invocation. It is
// produced once per request and never mutated after return.
type ExecutionResult struct {
	// Agent is the identity of the agent that produced (or should have
	// produced) this result.
	Agent string
	// Status is success, failure or skipped.
	Status Status
	// Payload holds the agent specific result value on success.
	Payload any
	// Err carries the failure cause when Status is not success.
	Err error
	// Duration is the wall clock time spent executing.
	Duration time.Duration
}

// Succeeded reports whether the execution completed successfully.
func (r *ExecutionResult) Succeeded() bool { return r.Status == StatusSuccess }

// NewSuccessResult builds a successful result for an agent.
func NewSuccessResult(agent string, payload any, dur time.Duration) *ExecutionResult {
	return &ExecutionResult{Agent: agent, Status: StatusSuccess, Payload: payload, Duration: dur}
}

// NewFailureResult builds a failed result carrying the cause.
func NewFailureResult(agent string, err error, dur time.Duration) *ExecutionResult {
	return &ExecutionResult{Agent: agent, Status: StatusFailure, Err: err, Duration: dur}
}

// NewSkippedResult marks a step that was never dispatched because an upstream
// dependency did not succeed.
func NewSkippedResult(agent string, err error) *ExecutionResult {
	return &ExecutionResult{Agent: agent, Status: StatusSkipped, Err: err}
}

// Source is one normalized piece of source material handed to a synthesis
// agent: a search snippet, an encyclopedia extract, or any upstream text.
type Source struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
