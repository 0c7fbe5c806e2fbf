// Package core defines the shared contracts of the orchestration engine: the
// Agent lifecycle interface, the execution request/result value types, the
// workflow run record and the error taxonomy. Higher level packages
// (coordinator, workflow, agent) depend on core; core depends on nothing but
// the standard library.
package core
