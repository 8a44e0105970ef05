package hotkey

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"spotify-hotkey/internal/action"
)

// Registry holds the active action to hotkey bindings.
type Registry struct {
	mu       sync.Mutex
	manager  *Manager
	bindings map[action.Action]Hotkey
	byID     map[uint32]action.Action
	log      *log.Logger
}

// NewRegistry creates an empty registry backed by manager.
func NewRegistry(manager *Manager, logger *log.Logger) *Registry {
	return &Registry{
		manager:  manager,
		bindings: make(map[action.Action]Hotkey),
		byID:     make(map[uint32]action.Action),
		log:      logger,
	}
}

// Update replaces the active set with next. Every current binding is
// unregistered, then each binding in next is registered; failures are
// logged and skipped, not rolled back. The registry afterwards holds only
// the bindings that registered, and the failures are returned per action.
func (r *Registry) Update(ctx context.Context, next map[action.Action]Hotkey) (map[action.Action]error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.bindings
	active := make(map[action.Action]Hotkey, len(next))
	failures := make(map[action.Action]error)

	err := r.manager.Do(ctx, func(b Backend) {
		for _, a := range action.All() {
			hk, ok := old[a]
			if !ok {
				continue
			}
			if err := b.Unregister(hk); err != nil {
				r.log.Error("Failed to unregister hotkey", "action", a, "hotkey", hk, "err", err)
			} else {
				r.log.Debug("Unregistered hotkey", "action", a, "hotkey", hk)
			}
		}

		for _, a := range action.All() {
			hk, ok := next[a]
			if !ok {
				continue
			}
			if err := b.Register(hk); err != nil {
				r.log.Error("Failed to register hotkey", "action", a, "hotkey", hk, "err", err)
				failures[a] = err
				continue
			}
			r.log.Debug("Registered hotkey", "action", a, "hotkey", hk, "id", hk.ID)
			active[a] = hk
		}
	})
	if err != nil {
		return nil, err
	}

	r.bindings = active
	r.byID = make(map[uint32]action.Action, len(active))
	for a, hk := range active {
		r.byID[hk.ID] = a
	}

	return failures, nil
}

// Clear unregisters every binding.
func (r *Registry) Clear(ctx context.Context) error {
	_, err := r.Update(ctx, nil)
	return err
}

// Lookup returns the action bound to a descriptor ID.
func (r *Registry) Lookup(id uint32) (action.Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	return a, ok
}

// Snapshot returns a copy of the active bindings.
func (r *Registry) Snapshot() map[action.Action]Hotkey {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[action.Action]Hotkey, len(r.bindings))
	for a, hk := range r.bindings {
		out[a] = hk
	}
	return out
}
