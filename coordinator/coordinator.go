package coordinator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ruslanmv/agenticai/core"
	"github.com/ruslanmv/agenticai/logging"
)

// Options configures a Coordinator instance.
type Options struct {
	// MaxConcurrent bounds the number of agent executions running at once.
	// Zero or negative means unlimited.
	MaxConcurrent int

	// Logger provides structured logging. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Coordinator is the central registry and dispatcher for agents. It enforces
// identity uniqueness, drives lifecycle transitions across all registered
// agents and dispatches execution requests.
//
// Registration is expected to happen before concurrent execution begins; the
// registry is nevertheless guarded by an RWMutex so late registration stays
// safe. Dispatch methods are safe for concurrent use.
type Coordinator struct {
	agents map[string]core.Agent
	mu     sync.RWMutex

	sem    chan struct{} // nil when unlimited
	logger logging.Logger
}

// New constructs a Coordinator with optional overrides.
func New(optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		MaxConcurrent: 10,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var sem chan struct{}
	if opts.MaxConcurrent > 0 {
		sem = make(chan struct{}, opts.MaxConcurrent)
	}

	return &Coordinator{
		agents: make(map[string]core.Agent),
		sem:    sem,
		logger: opts.Logger,
	}
}

// Register adds an agent to the registry. Registering an identity that is
// already taken fails with core.ErrDuplicateAgent and leaves the original
// registration intact.
func (c *Coordinator) Register(a core.Agent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.agents[a.Name()]; exists {
		return fmt.Errorf("%q: %w", a.Name(), core.ErrDuplicateAgent)
	}

	c.agents[a.Name()] = a
	c.logger.Info("registered agent", "agent", a.Name())

	return nil
}

// Unregister removes an agent from the registry. Unknown identities are
// ignored.
func (c *Coordinator) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.agents[name]; exists {
		delete(c.agents, name)
		c.logger.Info("unregistered agent", "agent", name)
	}
}

// Get retrieves a registered agent by identity.
func (c *Coordinator) Get(name string) (core.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[name]
	return a, ok
}

// Names returns the sorted identities of all registered agents.
func (c *Coordinator) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.agents))
	for name := range c.agents {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (c *Coordinator) snapshot() []core.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	agents := make([]core.Agent, 0, len(c.agents))
	for _, a := range c.agents {
		agents = append(agents, a)
	}

	return agents
}

// InitializeAll initializes every registered agent concurrently. Failures
// are collected, not fatal to the batch: the returned map holds one entry
// per agent, nil on success or an *core.InitializationError on failure. The
// caller decides whether to proceed with the agents that became Ready.
func (c *Coordinator) InitializeAll(ctx context.Context) map[string]error {
	agents := c.snapshot()
	c.logger.Info("initializing agents", "count", len(agents))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]error, len(agents))
	)

	for _, a := range agents {
		wg.Add(1)
		go func(a core.Agent) {
			defer wg.Done()

			var outcome error
			if err := a.Initialize(ctx); err != nil {
				outcome = &core.InitializationError{Agent: a.Name(), Err: err}
				c.logger.Error("agent initialization failed", "agent", a.Name(), "error", err)
			}

			mu.Lock()
			results[a.Name()] = outcome
			mu.Unlock()
		}(a)
	}

	wg.Wait()

	return results
}

// ExecuteAgent dispatches one execution to a registered agent.
//
// It returns a Go error only for caller misuse: core.ErrAgentNotFound for an
// unknown identity, core.ErrUninitialized when the target is not Ready. A
// failure inside the agent's own execution is reported as a failed
// ExecutionResult with a nil error, so batch and workflow callers can make
// local skip/continue decisions.
func (c *Coordinator) ExecuteAgent(ctx context.Context, name, task string, taskCtx map[string]any) (*core.ExecutionResult, error) {
	a, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, core.ErrAgentNotFound)
	}

	switch a.State() {
	case core.StateReady, core.StateExecuting:
	default:
		return nil, fmt.Errorf("agent %q is %s: %w", name, a.State(), core.ErrUninitialized)
	}

	if c.sem != nil {
		select {
		case c.sem <- struct{}{}:
			defer func() { <-c.sem }()
		case <-ctx.Done():
			return core.NewFailureResult(name, ctx.Err(), 0), nil
		}
	}

	c.logger.Debug("executing agent", "agent", name, "task", task)

	start := time.Now()
	payload, err := a.Execute(ctx, task, taskCtx)
	dur := time.Since(start)

	if err != nil {
		execErr := &core.ExecutionError{Agent: name, Task: task, Err: err}
		c.logger.Error("agent execution failed", "agent", name, "duration", dur, "error", err)
		return core.NewFailureResult(name, execErr, dur), nil
	}

	c.logger.Info("agent execution completed", "agent", name, "duration", dur)

	return core.NewSuccessResult(name, payload, dur), nil
}

// ExecuteParallel dispatches all listed executions concurrently. Each runs
// independently: one agent's failure neither cancels nor blocks the others.
// The returned map holds exactly one result per requested identity; requests
// that could not be dispatched at all (unknown or uninitialized agents)
// yield failed results rather than errors.
func (c *Coordinator) ExecuteParallel(ctx context.Context, requests []core.ExecutionRequest) map[string]*core.ExecutionResult {
	c.logger.Info("executing agents in parallel", "count", len(requests))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]*core.ExecutionResult, len(requests))
	)

	for _, req := range requests {
		wg.Add(1)
		go func(req core.ExecutionRequest) {
			defer wg.Done()

			res, err := c.ExecuteAgent(ctx, req.Agent, req.Task, req.Context)
			if err != nil {
				res = core.NewFailureResult(req.Agent, err, 0)
			}

			mu.Lock()
			results[req.Agent] = res
			mu.Unlock()
		}(req)
	}

	wg.Wait()

	return results
}

// ExecuteSequential dispatches the listed executions one after another,
// returning results in request order. Failures are recorded and the
// remaining requests still run; the caller inspects each result.
func (c *Coordinator) ExecuteSequential(ctx context.Context, requests []core.ExecutionRequest) []*core.ExecutionResult {
	c.logger.Info("executing agents sequentially", "count", len(requests))

	results := make([]*core.ExecutionResult, 0, len(requests))
	for _, req := range requests {
		res, err := c.ExecuteAgent(ctx, req.Agent, req.Task, req.Context)
		if err != nil {
			res = core.NewFailureResult(req.Agent, err, 0)
		}
		results = append(results, res)
	}

	return results
}

// CleanupAll calls Cleanup on every registered agent regardless of its
// current state, continuing through individual failures so resource release
// stays best effort. The returned map holds one entry per agent, nil on
// success.
func (c *Coordinator) CleanupAll(ctx context.Context) map[string]error {
	agents := c.snapshot()
	c.logger.Info("cleaning up agents", "count", len(agents))

	results := make(map[string]error, len(agents))
	for _, a := range agents {
		if err := a.Cleanup(ctx); err != nil {
			results[a.Name()] = err
			c.logger.Warn("agent cleanup failed", "agent", a.Name(), "error", err)
			continue
		}
		results[a.Name()] = nil
	}

	return results
}
