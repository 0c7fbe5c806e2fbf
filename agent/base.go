package agent

import (
	"fmt"
	"sync"

	"github.com/ruslanmv/agenticai/core"
)

// BaseAgent bundles the lifecycle state machine shared by all concrete
// agents. Embed it and implement Initialize/Execute/Cleanup, using the
// Mark*/Begin/End helpers to drive transitions. All exported methods are
// goroutine-safe.
//
// The state machine:
//
//	Uninitialized --MarkReady--> Ready
//	Uninitialized --MarkFailed--> Failed
//	Ready --BeginExecute--> Executing --EndExecute--> Ready
//	Ready/Failed --MarkDisposed--> Disposed
//
// Concurrent Execute calls are permitted: the agent stays in Executing while
// at least one call is in flight and returns to Ready when the last one
// finishes.
type BaseAgent struct {
	name        string
	description string

	mu       sync.Mutex
	state    core.State
	inFlight int
}

// NewBaseAgent constructs a BaseAgent in the Uninitialized state.
func NewBaseAgent(name, description string) BaseAgent {
	if description == "" {
		description = fmt.Sprintf("Agent %s", name)
	}
	return BaseAgent{name: name, description: description, state: core.StateUninitialized}
}

// Name returns the unique identity of this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a human readable description of the capability.
func (b *BaseAgent) Description() string { return b.description }

// State reports the current lifecycle state.
func (b *BaseAgent) State() core.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// MarkReady transitions the agent to Ready after a successful Initialize.
// It fails if the agent is disposed or already failed.
func (b *BaseAgent) MarkReady() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case core.StateUninitialized:
		b.state = core.StateReady
		return nil
	default:
		return fmt.Errorf("agent %s: cannot become ready from state %s", b.name, b.state)
	}
}

// MarkFailed records a fatal initialization failure. The agent will never
// execute; Cleanup remains callable.
func (b *BaseAgent) MarkFailed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != core.StateDisposed {
		b.state = core.StateFailed
	}
}

// MarkDisposed records that Cleanup ran. Safe to call from any state.
func (b *BaseAgent) MarkDisposed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = core.StateDisposed
}

// BeginExecute validates that the agent may execute and enters the Executing
// state. Callers must pair it with EndExecute.
func (b *BaseAgent) BeginExecute() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case core.StateReady, core.StateExecuting:
		b.inFlight++
		b.state = core.StateExecuting
		return nil
	default:
		return fmt.Errorf("agent %s is %s: %w", b.name, b.state, core.ErrUninitialized)
	}
}

// EndExecute leaves the Executing state, returning to Ready once the last
// in-flight execution drains.
func (b *BaseAgent) EndExecute() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inFlight > 0 {
		b.inFlight--
	}
	if b.inFlight == 0 && b.state == core.StateExecuting {
		b.state = core.StateReady
	}
}
