package store

import (
	"sync"

	"github.com/efreitasn/limitbook/internal/domain"
)

// ExecutionStore is a thread-safe in-memory tape of executions.
// Executions are append-only and chronological.
type ExecutionStore struct {
	mu         sync.RWMutex
	executions []*domain.Execution
}

// NewExecutionStore creates an empty ExecutionStore.
func NewExecutionStore() *ExecutionStore {
	return &ExecutionStore{}
}

// Append adds an execution to the end of the tape.
func (s *ExecutionStore) Append(e *domain.Execution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.executions = append(s.executions, e)
}

// All returns every execution in chronological order.
// Returns an empty slice when the tape is empty.
func (s *ExecutionStore) All() []*domain.Execution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]*domain.Execution, len(s.executions))
	copy(result, s.executions)
	return result
}

// Recent returns up to n of the most recent executions, oldest first.
func (s *ExecutionStore) Recent(n int) []*domain.Execution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []*domain.Execution{}
	}
	start := len(s.executions) - n
	if start < 0 {
		start = 0
	}
	result := make([]*domain.Execution, len(s.executions)-start)
	copy(result, s.executions[start:])
	return result
}

// Len returns the number of executions on the tape.
func (s *ExecutionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.executions)
}
