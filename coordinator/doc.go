// Package coordinator owns the agent registry and drives the agent
// lifecycle. It is the only component that dispatches executions to agents
// (singly, in parallel or sequentially) and the boundary where agent
// execution failures turn into failed ExecutionResults instead of Go errors.
package coordinator
