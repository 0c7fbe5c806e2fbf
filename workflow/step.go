package workflow

import (
	"fmt"

	"github.com/ruslanmv/agenticai/core"
)

// Step is one node of a workflow graph: which agent to invoke, what task to
// hand it and which upstream steps must succeed first.
//
// Task and string-valued Context entries are templates resolved against
// upstream payloads before dispatch: "{{.search.Query}}" references the
// payload of the step with ID "search". The resolved upstream payload map is
// additionally injected into the task context under the "upstream" key.
type Step struct {
	// ID uniquely identifies the step within the workflow.
	ID string
	// Agent is the identity of the registered agent to invoke.
	Agent string
	// Task is the task template for the agent.
	Task string
	// Context carries per-step parameters; string values are templates.
	Context map[string]any
	// DependsOn lists upstream step IDs that must succeed before this step
	// runs.
	DependsOn []string
}

// validateSteps checks the step graph before any execution starts: IDs must
// be unique, every referenced dependency must exist
// (core.ErrUnresolvedDependency) and the graph must be acyclic
// (core.ErrCyclicDependency). Returns the steps indexed by ID.
func validateSteps(steps []Step) (map[string]Step, error) {
	byID := make(map[string]Step, len(steps))
	for _, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("workflow step with agent %q has no id", s.Agent)
		}
		if _, exists := byID[s.ID]; exists {
			return nil, fmt.Errorf("duplicate workflow step id %q", s.ID)
		}
		byID[s.ID] = s
	}

	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if _, exists := byID[dep]; !exists {
				return nil, fmt.Errorf("step %q references %q: %w", s.ID, dep, core.ErrUnresolvedDependency)
			}
		}
	}

	if err := checkAcyclic(steps); err != nil {
		return nil, err
	}

	return byID, nil
}

// checkAcyclic runs Kahn's algorithm over the dependency edges; steps left
// unprocessed form a cycle.
func checkAcyclic(steps []Step) error {
	indegree := make(map[string]int, len(steps))
	dependents := make(map[string][]string, len(steps))

	for _, s := range steps {
		indegree[s.ID] = len(uniqueDeps(s.DependsOn))
		for _, dep := range uniqueDeps(s.DependsOn) {
			dependents[dep] = append(dependents[dep], s.ID)
		}
	}

	queue := make([]string, 0, len(steps))
	for id, n := range indegree {
		if n == 0 {
			queue = append(queue, id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		processed++

		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if processed != len(steps) {
		return core.ErrCyclicDependency
	}

	return nil
}

// uniqueDeps deduplicates a dependency list preserving order.
func uniqueDeps(deps []string) []string {
	if len(deps) < 2 {
		return deps
	}
	seen := make(map[string]struct{}, len(deps))
	out := deps[:0:0]
	for _, d := range deps {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
