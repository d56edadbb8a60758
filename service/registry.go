package service

import "sync"

// Registry tracks which users are inside an unsettled game session. The
// check-then-add admission test runs in one critical section so two
// concurrent starts for the same user can never both pass.
type Registry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewRegistry creates an empty active-session registry
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]struct{})}
}

// TryAcquire marks every given user as in-session. All-or-nothing: if any
// user is already active, no user is acquired and it returns false.
func (r *Registry) TryAcquire(userIDs ...string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range userIDs {
		if _, ok := r.active[id]; ok {
			return false
		}
	}
	for _, id := range userIDs {
		r.active[id] = struct{}{}
	}
	return true
}

// Release removes users from the registry. Idempotent.
func (r *Registry) Release(userIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range userIDs {
		delete(r.active, id)
	}
}

// Contains reports whether the user currently holds a session slot
func (r *Registry) Contains(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[userID]
	return ok
}
