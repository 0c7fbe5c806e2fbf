package core

import (
	"errors"
	"fmt"
)

var (
	// ErrAgentNotFound is returned when an identity has no registration.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrDuplicateAgent is returned when registering an identity that is
	// already taken. The original registration stays intact.
	ErrDuplicateAgent = errors.New("agent already registered")

	// ErrUninitialized is returned when Execute is called on an agent that
	// is not in the Ready state.
	ErrUninitialized = errors.New("agent not initialized")

	// ErrCyclicDependency is returned when a workflow step graph contains a
	// cycle. Detected before any step runs.
	ErrCyclicDependency = errors.New("workflow contains a dependency cycle")

	// ErrUnresolvedDependency is returned when a step references an upstream
	// step identifier that does not exist.
	ErrUnresolvedDependency = errors.New("workflow step depends on unknown step")
)

// InitializationError wraps a failure during Agent.Initialize. The agent is
// unusable for execution afterwards.
type InitializationError struct {
	Agent string
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("agent %s failed to initialize: %v", e.Agent, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// ExecutionError wraps a failure inside Agent.Execute (network timeout,
// malformed upstream response, upstream reported failure).
type ExecutionError struct {
	Agent string
	Task  string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent %s execution failed: %v", e.Agent, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
