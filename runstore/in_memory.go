// Package runstore provides implementations of core.RunStore. The in-memory
// store is the default for development and testing; durable deployments can
// supply their own implementation through the workflow engine's options.
package runstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ruslanmv/agenticai/core"
)

// ErrNotFound is returned when no run exists for the requested ID.
var ErrNotFound = fmt.Errorf("workflow run not found")

// InMemoryStore keeps finalized workflow runs in a mutex-guarded map. Safe
// for concurrent use.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*core.WorkflowRun
}

// NewInMemoryStore creates an empty in-memory run store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]*core.WorkflowRun)}
}

// Save stores a finalized run keyed by its ID, replacing any previous entry.
func (s *InMemoryStore) Save(run *core.WorkflowRun) error {
	if run.ID == "" {
		return fmt.Errorf("workflow run has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run

	return nil
}

// Get returns the run with the given ID or ErrNotFound. Runs are finalized
// before Save, so the stored pointer is returned directly.
func (s *InMemoryStore) Get(id string) (*core.WorkflowRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return run, nil
}

// List returns the sorted IDs of all stored runs.
func (s *InMemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

var _ core.RunStore = (*InMemoryStore)(nil)
