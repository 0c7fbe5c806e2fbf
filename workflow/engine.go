package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/ruslanmv/agenticai/coordinator"
	"github.com/ruslanmv/agenticai/core"
	"github.com/ruslanmv/agenticai/internal/util"
	"github.com/ruslanmv/agenticai/logging"
	"github.com/ruslanmv/agenticai/runstore"
)

// Options configures a workflow Engine.
type Options struct {
	// Logger provides structured logging. Defaults to NoOpLogger.
	Logger logging.Logger

	// RunStore persists finalized workflow runs. Defaults to an in-memory
	// store.
	RunStore core.RunStore

	// RequireAllSources controls the research pipeline's partial-failure
	// policy: when true the synthesis stage is skipped unless every data
	// gathering stage succeeded; when false (the default) synthesis proceeds
	// with whichever sources survived and is skipped only when all gathering
	// stages failed.
	RequireAllSources bool

	// SearchAgent, WikipediaAgent and CrafterAgent override the agent
	// identities the research pipeline dispatches to.
	SearchAgent    string
	WikipediaAgent string
	CrafterAgent   string
}

// Engine chains agent executions into directed pipelines on top of a
// Coordinator, passing intermediate results forward and aggregating a final
// artifact. Safe for concurrent use.
type Engine struct {
	coord  *coordinator.Coordinator
	logger logging.Logger
	runs   core.RunStore

	requireAllSources bool
	searchAgent       string
	wikipediaAgent    string
	crafterAgent      string
}

// New constructs a workflow Engine over a Coordinator.
func New(coord *coordinator.Coordinator, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Logger:         logging.NoOpLogger{},
		RunStore:       runstore.NewInMemoryStore(),
		SearchAgent:    DefaultSearchAgentName,
		WikipediaAgent: DefaultWikipediaAgentName,
		CrafterAgent:   DefaultCrafterAgentName,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		coord:             coord,
		logger:            opts.Logger,
		runs:              opts.RunStore,
		requireAllSources: opts.RequireAllSources,
		searchAgent:       opts.SearchAgent,
		wikipediaAgent:    opts.WikipediaAgent,
		crafterAgent:      opts.CrafterAgent,
	}
}

// GetRun returns a finalized run by ID from the engine's run store.
func (e *Engine) GetRun(id string) (*core.WorkflowRun, error) { return e.runs.Get(id) }

// stepOutcome carries one finished step back to the scheduler loop.
type stepOutcome struct {
	id     string
	result *core.ExecutionResult
}

// ExecuteWorkflow executes an arbitrary acyclic step graph.
//
// Structural errors (cycles, unresolved or duplicate identifiers) are fatal
// and returned before any step runs. Afterwards the method always returns a
// complete WorkflowRun: every step appears in Steps as success, failure or
// skipped. A step is scheduled only once all of its dependencies reached a
// terminal state; steps whose dependencies are all satisfied run
// concurrently. When an upstream step fails or is skipped, every dependent
// step is marked skipped rather than invoked with missing data.
// Cancellation via ctx fails in-flight steps and skips not-yet-started ones;
// completed results are preserved.
func (e *Engine) ExecuteWorkflow(ctx context.Context, steps []Step) (*core.WorkflowRun, error) {
	byID, err := validateSteps(steps)
	if err != nil {
		return nil, err
	}

	run := e.newRun("custom")
	e.logger.Info("workflow started", "run_id", run.ID, "steps", len(steps))

	pending := make(map[string]int, len(steps))
	dependents := make(map[string][]string, len(steps))
	for _, s := range steps {
		deps := uniqueDeps(s.DependsOn)
		pending[s.ID] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], s.ID)
		}
	}

	outcomes := make(chan stepOutcome)
	terminal := 0

	// launch dispatches one step whose dependencies are all satisfied. The
	// upstream payload snapshot is taken here, on the scheduler goroutine,
	// so step goroutines never touch run.Steps.
	launch := func(s Step) bool {
		if ctx.Err() != nil {
			run.Steps[s.ID] = core.NewSkippedResult(s.Agent, fmt.Errorf("workflow cancelled: %w", ctx.Err()))
			return false
		}

		upstream := make(map[string]any, len(s.DependsOn))
		for _, dep := range uniqueDeps(s.DependsOn) {
			upstream[dep] = run.Steps[dep].Payload
		}

		go func(s Step, upstream map[string]any) {
			outcomes <- stepOutcome{id: s.ID, result: e.runStep(ctx, s, upstream)}
		}(s, upstream)

		return true
	}

	// settle walks the dependents of a terminally-settled step, launching
	// those that became ready and transitively skipping those whose upstream
	// did not succeed.
	var settle func(id string)
	settle = func(id string) {
		for _, depID := range dependents[id] {
			pending[depID]--
			if pending[depID] != 0 {
				continue
			}

			step := byID[depID]
			if failedDep := e.firstUnmetDep(run, step); failedDep != "" {
				run.Steps[depID] = core.NewSkippedResult(step.Agent,
					fmt.Errorf("upstream step %q did not succeed", failedDep))
				e.logger.Warn("workflow step skipped", "run_id", run.ID, "step", depID, "upstream", failedDep)
				terminal++
				settle(depID)
				continue
			}

			if !launch(step) {
				terminal++
				settle(depID)
			}
		}
	}

	for _, s := range steps {
		if pending[s.ID] == 0 {
			if !launch(s) {
				terminal++
				settle(s.ID)
			}
		}
	}

	for terminal < len(steps) {
		o := <-outcomes
		run.Steps[o.id] = o.result
		terminal++
		e.logger.Debug("workflow step settled", "run_id", run.ID, "step", o.id, "status", o.result.Status)
		settle(o.id)
	}

	e.finalize(run)

	return run, nil
}

// firstUnmetDep returns the ID of the first dependency that did not succeed,
// or "" when all succeeded.
func (e *Engine) firstUnmetDep(run *core.WorkflowRun, s Step) string {
	for _, dep := range s.DependsOn {
		if res := run.Steps[dep]; res == nil || !res.Succeeded() {
			return dep
		}
	}
	return ""
}

// runStep resolves the step's templates against upstream payloads and
// dispatches it. Dispatch-level errors (unknown or uninitialized agents)
// become failed results so the run record stays complete.
func (e *Engine) runStep(ctx context.Context, s Step, upstream map[string]any) *core.ExecutionResult {
	task, err := util.RenderTemplate(s.Task, upstream)
	if err != nil {
		return core.NewFailureResult(s.Agent, fmt.Errorf("step %q task template: %w", s.ID, err), 0)
	}

	taskCtx := make(map[string]any, len(s.Context)+1)
	for k, v := range s.Context {
		if str, ok := v.(string); ok {
			rendered, err := util.RenderTemplate(str, upstream)
			if err != nil {
				return core.NewFailureResult(s.Agent, fmt.Errorf("step %q context template %q: %w", s.ID, k, err), 0)
			}
			taskCtx[k] = rendered
			continue
		}
		taskCtx[k] = v
	}
	if len(upstream) > 0 {
		taskCtx["upstream"] = upstream
	}

	res, err := e.coord.ExecuteAgent(ctx, s.Agent, task, taskCtx)
	if err != nil {
		return core.NewFailureResult(s.Agent, err, 0)
	}

	return res
}

func (e *Engine) newRun(name string) *core.WorkflowRun {
	return &core.WorkflowRun{
		ID:        util.NewID(),
		Name:      name,
		StartedAt: time.Now(),
		Steps:     make(map[string]*core.ExecutionResult),
		Status:    core.StatusFailure,
	}
}

// finalize computes the overall status, stamps the completion time and
// persists the run.
func (e *Engine) finalize(run *core.WorkflowRun) {
	run.CompletedAt = time.Now()

	run.Status = core.StatusSuccess
	for _, res := range run.Steps {
		if !res.Succeeded() {
			run.Status = core.StatusFailure
			break
		}
	}

	if err := e.runs.Save(run); err != nil {
		e.logger.Warn("failed to persist workflow run", "run_id", run.ID, "error", err)
	}

	e.logger.Info("workflow completed", "run_id", run.ID, "status", run.Status,
		"duration", run.CompletedAt.Sub(run.StartedAt))
}
