// Package workflow composes coordinator-mediated agent executions into
// directed pipelines with data dependencies.
//
// The Engine offers two entry points: ExecuteResearchWorkflow, the canonical
// search + encyclopedia → synthesis pipeline, and ExecuteWorkflow, which
// schedules an arbitrary acyclic step graph. Steps with satisfied
// dependencies run concurrently; a step whose upstream did not succeed is
// marked skipped instead of being invoked with missing data. A failed
// workflow still returns a complete WorkflowRun describing every step's
// outcome.
package workflow
