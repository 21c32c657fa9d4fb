package authstate

import (
	"errors"
	"sync"
	"time"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	pending map[string]*PendingAuthorization
}

// NewInMemoryRepo creates a new in-memory pending authorization repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		pending: make(map[string]*PendingAuthorization),
	}
}

// Upsert stores or updates a pending authorization
func (r *InMemoryRepo) Upsert(state string, pending *PendingAuthorization) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if pending == nil {
		return errors.New("pending cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to prevent external modifications
	r.pending[state] = &PendingAuthorization{
		CodeVerifier: pending.CodeVerifier,
		CreatedAt:    pending.CreatedAt,
	}

	return nil
}

// Consume retrieves and removes the pending authorization for a state
func (r *InMemoryRepo) Consume(state string) (*PendingAuthorization, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pending, exists := r.pending[state]
	if !exists {
		return nil, errors.New("state not found")
	}
	delete(r.pending, state)

	return &PendingAuthorization{
		CodeVerifier: pending.CodeVerifier,
		CreatedAt:    pending.CreatedAt,
	}, nil
}

// Delete removes a pending authorization
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, state)
	return nil
}

// Cleanup evicts entries older than maxAge. Abandoned login attempts leave
// entries behind that nothing else will ever remove.
func (r *InMemoryRepo) Cleanup(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for state, pending := range r.pending {
		if pending.CreatedAt.Before(cutoff) {
			delete(r.pending, state)
			removed++
		}
	}
	return removed
}
