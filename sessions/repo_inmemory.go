package sessions

import (
	"errors"
	"sync"
)

// InMemoryRepo is a thread-safe single-slot implementation of Repo
type InMemoryRepo struct {
	mu      sync.RWMutex
	current *Session
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Set(session Session) error {
	if session.State == "" {
		return errors.New("session state cannot be empty")
	}
	if session.AccessToken == "" {
		return errors.New("session access token cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := session
	r.current = &copied
	return nil
}

func (r *InMemoryRepo) Current() (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return Session{}, false
	}
	return *r.current, true
}

func (r *InMemoryRepo) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = nil
}
