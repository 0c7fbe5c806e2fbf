package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/ruslanmv/agenticai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseAgent(t *testing.T) {
	b := NewBaseAgent("test-agent", "")
	assert.Equal(t, "test-agent", b.Name())
	assert.Equal(t, "Agent test-agent", b.Description())
	assert.Equal(t, core.StateUninitialized, b.State())

	b2 := NewBaseAgent("other", "does things")
	assert.Equal(t, "does things", b2.Description())
}

func TestBaseAgent_Lifecycle(t *testing.T) {
	b := NewBaseAgent("test-agent", "")

	// Execute before initialize must be rejected.
	err := b.BeginExecute()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUninitialized)

	require.NoError(t, b.MarkReady())
	assert.Equal(t, core.StateReady, b.State())

	require.NoError(t, b.BeginExecute())
	assert.Equal(t, core.StateExecuting, b.State())
	b.EndExecute()
	assert.Equal(t, core.StateReady, b.State())

	b.MarkDisposed()
	assert.Equal(t, core.StateDisposed, b.State())
	assert.ErrorIs(t, b.BeginExecute(), core.ErrUninitialized)
}

func TestBaseAgent_MarkReadyTwice(t *testing.T) {
	b := NewBaseAgent("test-agent", "")
	require.NoError(t, b.MarkReady())
	assert.Error(t, b.MarkReady())
}

func TestBaseAgent_FailedIsTerminalForExecution(t *testing.T) {
	b := NewBaseAgent("test-agent", "")
	b.MarkFailed()
	assert.Equal(t, core.StateFailed, b.State())

	err := b.BeginExecute()
	assert.ErrorIs(t, err, core.ErrUninitialized)

	// Failed agents never become ready.
	assert.Error(t, b.MarkReady())

	// Cleanup remains callable.
	b.MarkDisposed()
	assert.Equal(t, core.StateDisposed, b.State())
}

func TestBaseAgent_ConcurrentExecutions(t *testing.T) {
	b := NewBaseAgent("test-agent", "")
	require.NoError(t, b.MarkReady())

	require.NoError(t, b.BeginExecute())
	require.NoError(t, b.BeginExecute())
	assert.Equal(t, core.StateExecuting, b.State())

	b.EndExecute()
	assert.Equal(t, core.StateExecuting, b.State())
	b.EndExecute()
	assert.Equal(t, core.StateReady, b.State())
}

// lifecycleProbe is a minimal concrete agent used to exercise the full
// contract through the core.Agent interface.
type lifecycleProbe struct {
	BaseAgent
	initErr error
}

func (p *lifecycleProbe) Initialize(_ context.Context) error {
	if p.initErr != nil {
		p.MarkFailed()
		return p.initErr
	}
	return p.MarkReady()
}

func (p *lifecycleProbe) Execute(_ context.Context, task string, _ map[string]any) (any, error) {
	if err := p.BeginExecute(); err != nil {
		return nil, err
	}
	defer p.EndExecute()
	return "ok:" + task, nil
}

func (p *lifecycleProbe) Cleanup(_ context.Context) error {
	p.MarkDisposed()
	return nil
}

func TestLifecycleProbe_Contract(t *testing.T) {
	ctx := context.Background()

	var a core.Agent = &lifecycleProbe{BaseAgent: NewBaseAgent("probe", "")}

	_, err := a.Execute(ctx, "task", nil)
	assert.ErrorIs(t, err, core.ErrUninitialized)

	require.NoError(t, a.Initialize(ctx))
	payload, err := a.Execute(ctx, "task", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok:task", payload)

	require.NoError(t, a.Cleanup(ctx))
	assert.Equal(t, core.StateDisposed, a.State())
}

func TestLifecycleProbe_InitializeFailure(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("no upstream")

	var a core.Agent = &lifecycleProbe{BaseAgent: NewBaseAgent("probe", ""), initErr: sentinel}

	err := a.Initialize(ctx)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, core.StateFailed, a.State())

	_, err = a.Execute(ctx, "task", nil)
	assert.ErrorIs(t, err, core.ErrUninitialized)

	assert.NoError(t, a.Cleanup(ctx))
}
