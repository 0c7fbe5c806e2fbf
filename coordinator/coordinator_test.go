package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ruslanmv/agenticai/agent"
	"github.com/ruslanmv/agenticai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAgent is a lightweight concrete agent used to exercise the
// coordinator without external dependencies.
type stubAgent struct {
	agent.BaseAgent
	initErr    error
	execFn     func(ctx context.Context, task string, taskCtx map[string]any) (any, error)
	cleanupErr error
	cleanedUp  bool
}

func newStubAgent(name string) *stubAgent {
	return &stubAgent{BaseAgent: agent.NewBaseAgent(name, "")}
}

func (s *stubAgent) Initialize(_ context.Context) error {
	if s.initErr != nil {
		s.MarkFailed()
		return s.initErr
	}
	return s.MarkReady()
}

func (s *stubAgent) Execute(ctx context.Context, task string, taskCtx map[string]any) (any, error) {
	if err := s.BeginExecute(); err != nil {
		return nil, err
	}
	defer s.EndExecute()

	if s.execFn != nil {
		return s.execFn(ctx, task, taskCtx)
	}
	return map[string]any{"task": task}, nil
}

func (s *stubAgent) Cleanup(_ context.Context) error {
	s.cleanedUp = true
	s.MarkDisposed()
	return s.cleanupErr
}

func TestCoordinator_Register(t *testing.T) {
	c := New()

	require.NoError(t, c.Register(newStubAgent("a")))
	require.NoError(t, c.Register(newStubAgent("b")))
	assert.Equal(t, []string{"a", "b"}, c.Names())
}

func TestCoordinator_RegisterDuplicate(t *testing.T) {
	c := New()

	first := newStubAgent("a")
	require.NoError(t, c.Register(first))

	err := c.Register(newStubAgent("a"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateAgent)

	// The original registration stays intact.
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, core.Agent(first), got)
}

func TestCoordinator_Unregister(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(newStubAgent("a")))

	c.Unregister("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	// Unknown identities are ignored.
	c.Unregister("missing")
}

func TestCoordinator_InitializeAll_PartialFailure(t *testing.T) {
	c := New()
	sentinel := errors.New("no credentials")

	good := newStubAgent("good")
	bad := newStubAgent("bad")
	bad.initErr = sentinel

	require.NoError(t, c.Register(good))
	require.NoError(t, c.Register(bad))

	results := c.InitializeAll(context.Background())
	require.Len(t, results, 2)
	assert.NoError(t, results["good"])
	require.Error(t, results["bad"])
	assert.ErrorIs(t, results["bad"], sentinel)

	var initErr *core.InitializationError
	require.ErrorAs(t, results["bad"], &initErr)
	assert.Equal(t, "bad", initErr.Agent)

	assert.Equal(t, core.StateReady, good.State())
	assert.Equal(t, core.StateFailed, bad.State())
}

func TestCoordinator_ExecuteAgent(t *testing.T) {
	c := New()
	a := newStubAgent("a")
	require.NoError(t, c.Register(a))
	c.InitializeAll(context.Background())

	res, err := c.ExecuteAgent(context.Background(), "a", "do it", nil)
	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, res.Status)
	assert.Equal(t, "a", res.Agent)
	assert.Equal(t, map[string]any{"task": "do it"}, res.Payload)
	assert.GreaterOrEqual(t, res.Duration, time.Duration(0))
}

func TestCoordinator_ExecuteAgent_NotFound(t *testing.T) {
	c := New()

	_, err := c.ExecuteAgent(context.Background(), "missing", "task", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAgentNotFound)
}

func TestCoordinator_ExecuteAgent_Uninitialized(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(newStubAgent("a")))

	_, err := c.ExecuteAgent(context.Background(), "a", "task", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUninitialized)
}

func TestCoordinator_ExecuteAgent_FailureBecomesResult(t *testing.T) {
	c := New()
	sentinel := errors.New("upstream timeout")

	a := newStubAgent("a")
	a.execFn = func(context.Context, string, map[string]any) (any, error) { return nil, sentinel }
	require.NoError(t, c.Register(a))
	c.InitializeAll(context.Background())

	res, err := c.ExecuteAgent(context.Background(), "a", "task", nil)
	require.NoError(t, err, "execution failures are results, not errors")
	assert.Equal(t, core.StatusFailure, res.Status)
	assert.ErrorIs(t, res.Err, sentinel)

	var execErr *core.ExecutionError
	require.ErrorAs(t, res.Err, &execErr)
	assert.Equal(t, "a", execErr.Agent)
}

func TestCoordinator_ExecuteParallel(t *testing.T) {
	c := New()
	sentinel := errors.New("boom")

	delay := 100 * time.Millisecond
	mkAgent := func(name string, fail bool) *stubAgent {
		a := newStubAgent(name)
		a.execFn = func(ctx context.Context, task string, _ map[string]any) (any, error) {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if fail {
				return nil, sentinel
			}
			return task, nil
		}
		return a
	}

	require.NoError(t, c.Register(mkAgent("a", false)))
	require.NoError(t, c.Register(mkAgent("b", true)))
	require.NoError(t, c.Register(mkAgent("c", false)))
	c.InitializeAll(context.Background())

	start := time.Now()
	results := c.ExecuteParallel(context.Background(), []core.ExecutionRequest{
		{Agent: "a", Task: "t1"},
		{Agent: "b", Task: "t2"},
		{Agent: "c", Task: "t3"},
		{Agent: "missing", Task: "t4"},
	})
	elapsed := time.Since(start)

	// One result per request, failures included.
	require.Len(t, results, 4)
	assert.Equal(t, core.StatusSuccess, results["a"].Status)
	assert.Equal(t, core.StatusFailure, results["b"].Status)
	assert.ErrorIs(t, results["b"].Err, sentinel)
	assert.Equal(t, core.StatusSuccess, results["c"].Status)
	assert.Equal(t, core.StatusFailure, results["missing"].Status)
	assert.ErrorIs(t, results["missing"].Err, core.ErrAgentNotFound)

	// Bounded by the slowest request, not the sum.
	assert.Less(t, elapsed, 3*delay)
}

func TestCoordinator_ExecuteSequential(t *testing.T) {
	c := New()
	a := newStubAgent("a")
	b := newStubAgent("b")
	b.execFn = func(context.Context, string, map[string]any) (any, error) {
		return nil, errors.New("fails")
	}
	require.NoError(t, c.Register(a))
	require.NoError(t, c.Register(b))
	c.InitializeAll(context.Background())

	results := c.ExecuteSequential(context.Background(), []core.ExecutionRequest{
		{Agent: "a", Task: "t1"},
		{Agent: "b", Task: "t2"},
		{Agent: "a", Task: "t3"},
	})

	require.Len(t, results, 3)
	assert.Equal(t, core.StatusSuccess, results[0].Status)
	assert.Equal(t, core.StatusFailure, results[1].Status)
	// Later requests still run after a failure.
	assert.Equal(t, core.StatusSuccess, results[2].Status)
}

func TestCoordinator_CleanupAll_ContinuesThroughFailures(t *testing.T) {
	c := New()
	sentinel := errors.New("close failed")

	a := newStubAgent("a")
	b := newStubAgent("b")
	b.cleanupErr = sentinel
	d := newStubAgent("d")

	require.NoError(t, c.Register(a))
	require.NoError(t, c.Register(b))
	require.NoError(t, c.Register(d))

	// Cleanup runs for every agent regardless of lifecycle state.
	results := c.CleanupAll(context.Background())
	require.Len(t, results, 3)
	assert.NoError(t, results["a"])
	assert.ErrorIs(t, results["b"], sentinel)
	assert.NoError(t, results["d"])

	assert.True(t, a.cleanedUp)
	assert.True(t, b.cleanedUp)
	assert.True(t, d.cleanedUp)
}
