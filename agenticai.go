// Package agenticai provides a high-level façade over the agent coordinator
// and workflow engine, enabling rapid construction of multi-agent research
// systems. Most applications interact with this package by:
//  1. Creating an Orchestrator via New() (optionally overriding the logger,
//     run store or concurrency limit)
//  2. Registering one or more agents (search, encyclopedia, synthesis,
//     custom)
//  3. Initializing the fleet, executing agents or workflows, and cleaning up
//
// The façade delegates dispatch to coordinator.Coordinator and pipeline
// composition to workflow.Engine while keeping setup concise. All defaults
// are safe for local development and testing; production deployments
// typically supply a durable run store and a structured logger.
package agenticai

import (
	"context"

	"github.com/ruslanmv/agenticai/coordinator"
	"github.com/ruslanmv/agenticai/core"
	"github.com/ruslanmv/agenticai/logging"
	"github.com/ruslanmv/agenticai/runstore"
	"github.com/ruslanmv/agenticai/workflow"
)

// Options configures the Orchestrator instance.
type Options struct {
	// MaxConcurrentExecutions bounds simultaneous agent executions. Zero or
	// negative means unlimited.
	MaxConcurrentExecutions int

	// RequireAllSources selects the research pipeline's partial-failure
	// policy (see workflow.Options).
	RequireAllSources bool

	// RunStore persists finalized workflow runs (defaults to in-memory).
	RunStore core.RunStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Orchestrator is the high-level façade aggregating the coordinator and the
// workflow engine.
type Orchestrator struct {
	coord  *coordinator.Coordinator
	engine *workflow.Engine
}

// New creates a new Orchestrator with optional overrides. Any unset service
// is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxConcurrentExecutions: 10,
		RunStore:                runstore.NewInMemoryStore(),
		Logger:                  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	coord := coordinator.New(func(o *coordinator.Options) {
		o.MaxConcurrent = opts.MaxConcurrentExecutions
		o.Logger = opts.Logger
	})

	engine := workflow.New(coord, func(o *workflow.Options) {
		o.Logger = opts.Logger
		o.RunStore = opts.RunStore
		o.RequireAllSources = opts.RequireAllSources
	})

	return &Orchestrator{coord: coord, engine: engine}
}

// Coordinator exposes the underlying coordinator for advanced use.
func (o *Orchestrator) Coordinator() *coordinator.Coordinator { return o.coord }

// RegisterAgent adds an agent to the underlying coordinator.
func (o *Orchestrator) RegisterAgent(a core.Agent) error { return o.coord.Register(a) }

// InitializeAll initializes every registered agent, returning a per-agent
// outcome map (nil on success).
func (o *Orchestrator) InitializeAll(ctx context.Context) map[string]error {
	return o.coord.InitializeAll(ctx)
}

// ExecuteAgent dispatches one execution to a registered agent.
func (o *Orchestrator) ExecuteAgent(ctx context.Context, name, task string, taskCtx map[string]any) (*core.ExecutionResult, error) {
	return o.coord.ExecuteAgent(ctx, name, task, taskCtx)
}

// ExecuteParallel dispatches the listed executions concurrently and returns
// one result per requested agent identity.
func (o *Orchestrator) ExecuteParallel(ctx context.Context, requests []core.ExecutionRequest) map[string]*core.ExecutionResult {
	return o.coord.ExecuteParallel(ctx, requests)
}

// ExecuteResearchWorkflow runs the canonical search + encyclopedia →
// synthesis pipeline.
func (o *Orchestrator) ExecuteResearchWorkflow(ctx context.Context, query string, params workflow.ResearchParams) (*core.WorkflowRun, error) {
	return o.engine.ExecuteResearchWorkflow(ctx, query, params)
}

// ExecuteWorkflow runs an arbitrary acyclic step graph.
func (o *Orchestrator) ExecuteWorkflow(ctx context.Context, steps []workflow.Step) (*core.WorkflowRun, error) {
	return o.engine.ExecuteWorkflow(ctx, steps)
}

// GetRun returns a finalized workflow run by ID.
func (o *Orchestrator) GetRun(id string) (*core.WorkflowRun, error) { return o.engine.GetRun(id) }

// CleanupAll releases every registered agent's resources, returning a
// per-agent outcome map (nil on success).
func (o *Orchestrator) CleanupAll(ctx context.Context) map[string]error {
	return o.coord.CleanupAll(ctx)
}
