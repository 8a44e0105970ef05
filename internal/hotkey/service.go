package hotkey

import (
	"context"
	"maps"
	"sync"

	"github.com/charmbracelet/log"

	"spotify-hotkey/internal/action"
)

// Service ties the cache, the parser and the registry together.
type Service struct {
	cache    *Cache
	registry *Registry
	log      *log.Logger

	mu        sync.Mutex
	lastSaved map[string]string
}

// NewService creates a hotkey service.
func NewService(cache *Cache, registry *Registry, logger *log.Logger) *Service {
	return &Service{
		cache:    cache,
		registry: registry,
		log:      logger,
	}
}

// Registry returns the underlying registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Set persists the given hotkey strings and makes them the active set.
// An empty string leaves the action unbound. The returned map holds parse
// and registration failures; those bindings are skipped while the others
// stay active.
func (s *Service) Set(ctx context.Context, hotkeys map[action.Action]string) (map[action.Action]error, error) {
	mapping := make(map[string]string, len(hotkeys))
	for a, str := range hotkeys {
		mapping[a.String()] = str
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Save(mapping); err != nil {
		s.log.Error("Failed to save hotkeys", "path", s.cache.Path(), "err", err)
	} else {
		s.lastSaved = maps.Clone(mapping)
	}

	return s.apply(ctx, mapping)
}

// Restore registers the hotkeys found in the cache. A missing or corrupt
// cache results in no hotkeys.
func (s *Service) Restore(ctx context.Context) (map[action.Action]error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping := s.cache.Load()
	s.lastSaved = maps.Clone(mapping)
	return s.apply(ctx, mapping)
}

// Loaded returns the persisted hotkey strings.
func (s *Service) Loaded() (map[string]string, error) {
	return s.cache.Read()
}

// Active returns the registered bindings in their string form.
func (s *Service) Active() map[string]string {
	out := make(map[string]string)
	for a, hk := range s.registry.Snapshot() {
		out[a.String()] = hk.String()
	}
	return out
}

// reloadIfChanged restores from the cache unless it matches what this
// service last wrote or loaded.
func (s *Service) reloadIfChanged(ctx context.Context) error {
	mapping, err := s.cache.Read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if maps.Equal(mapping, s.lastSaved) {
		return nil
	}

	s.log.Info("Hotkey cache changed on disk, reloading", "path", s.cache.Path())
	s.lastSaved = maps.Clone(mapping)
	_, err = s.apply(ctx, mapping)
	return err
}

func (s *Service) apply(ctx context.Context, mapping map[string]string) (map[action.Action]error, error) {
	bindings, failures := s.parseAll(mapping)

	regFailures, err := s.registry.Update(ctx, bindings)
	if err != nil {
		return nil, err
	}
	for a, ferr := range regFailures {
		failures[a] = ferr
	}
	return failures, nil
}

func (s *Service) parseAll(mapping map[string]string) (map[action.Action]Hotkey, map[action.Action]error) {
	bindings := make(map[action.Action]Hotkey, len(mapping))
	failures := make(map[action.Action]error)

	for name, str := range mapping {
		if str == "" {
			continue
		}
		a, err := action.Parse(name)
		if err != nil {
			s.log.Error("Ignoring hotkey for unknown action", "name", name, "err", err)
			continue
		}
		hk, err := Parse(str)
		if err != nil {
			s.log.Error("Failed to parse hotkey", "action", a, "hotkey", str, "err", err)
			failures[a] = err
			continue
		}
		bindings[a] = hk
	}

	return bindings, failures
}
