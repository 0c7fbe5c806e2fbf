package core

import "context"

// State tracks the lifecycle position of an agent instance.
//
// Transitions:
//
//	Uninitialized --Initialize ok--> Ready
//	Uninitialized --Initialize err--> Failed (terminal for execution)
//	Ready --Execute--> Executing --done--> Ready
//	Ready/Failed --Cleanup--> Disposed (terminal)
type State int

const (
	// StateUninitialized is the state of a freshly constructed agent.
	StateUninitialized State = iota
	// StateReady means Initialize succeeded and Execute may be called.
	StateReady
	// StateExecuting means at least one Execute call is in flight.
	StateExecuting
	// StateFailed means Initialize failed; the agent must not execute but
	// Cleanup remains callable.
	StateFailed
	// StateDisposed means Cleanup ran; the agent is finished.
	StateDisposed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateExecuting:
		return "executing"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Agent is the capability contract every agent implementation must satisfy.
//
// An agent wraps exactly one external capability (a web search, an
// encyclopedic lookup, a generative synthesis call) behind a three phase
// lifecycle. The coordinator drives the lifecycle; the agent exclusively owns
// whatever connection or client state it needs and releases it in Cleanup.
//
// Implementations must:
//   - fail Execute with ErrUninitialized unless Initialize has succeeded
//   - respect context cancellation inside Execute
//   - keep Cleanup safe to call even after a failed or skipped Initialize
type Agent interface {
	// Name returns the unique identity used for registry lookup.
	Name() string

	// Description returns a human readable summary of the capability.
	Description() string

	// State reports the current lifecycle state.
	State() State

	// Initialize performs one time setup (opening connections, validating
	// credentials). It must be called exactly once before the first Execute.
	// A failure is fatal for this instance: the agent transitions to
	// StateFailed and must not become Ready.
	Initialize(ctx context.Context) error

	// Execute performs one unit of work and returns the structured payload.
	// The taskCtx carries optional per-call parameters (result counts, token
	// budgets, upstream data). Execute performs no retries; retry policy
	// belongs to the caller.
	Execute(ctx context.Context, task string, taskCtx map[string]any) (any, error)

	// Cleanup releases owned resources. It must not fail for resources that
	// were never acquired.
	Cleanup(ctx context.Context) error
}
