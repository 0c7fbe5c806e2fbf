package core

import "time"

// WorkflowRun records everything a workflow produced: one ExecutionResult per
// step (including failed and skipped steps), the final aggregated artifact
// and the overall status. The workflow engine mutates the run while steps
// complete and finalizes it when the workflow terminates; a finalized run is
// never modified again.
type WorkflowRun struct {
	// ID uniquely identifies this run.
	ID string
	// Name labels the workflow that produced the run (for example
	// "research").
	Name string
	// StartedAt / CompletedAt bound the run's wall clock window.
	StartedAt   time.Time
	CompletedAt time.Time
	// Steps maps step identifier to its execution result.
	Steps map[string]*ExecutionResult
	// Output is the final aggregated artifact (for the research workflow,
	// the synthesis payload).
	Output any
	// Status is success only when every step succeeded.
	Status Status
}

// Succeeded reports whether every step of the run succeeded.
func (r *WorkflowRun) Succeeded() bool { return r.Status == StatusSuccess }

// Step returns the recorded result for a step identifier.
func (r *WorkflowRun) Step(id string) (*ExecutionResult, bool) {
	res, ok := r.Steps[id]
	return res, ok
}

// RunStore persists finalized workflow runs. Implementations must be safe
// for concurrent use.
type RunStore interface {
	// Save stores a finalized run keyed by its ID.
	Save(run *WorkflowRun) error
	// Get returns the run with the given ID or a not-found error from the
	// implementation.
	Get(id string) (*WorkflowRun, error)
	// List returns the IDs of all stored runs.
	List() ([]string, error)
}
