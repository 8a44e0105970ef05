package hotkey

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// fakeBackend records registrations in memory and can be told to reject
// specific keys.
type fakeBackend struct {
	mu         sync.Mutex
	registered map[uint32]Hotkey
	reject     map[Code]error
	events     chan Event
	closed     bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		registered: make(map[uint32]Hotkey),
		reject:     make(map[Code]error),
		events:     make(chan Event, 8),
	}
}

func (b *fakeBackend) Register(hk Hotkey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err, ok := b.reject[hk.Key]; ok {
		return err
	}
	for _, existing := range b.registered {
		if existing.SameCombo(hk) {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, hk)
		}
	}
	b.registered[hk.ID] = hk
	return nil
}

func (b *fakeBackend) Unregister(hk Hotkey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.registered[hk.ID]; !ok {
		return ErrNotRegistered
	}
	delete(b.registered, hk.ID)
	return nil
}

func (b *fakeBackend) Events() <-chan Event {
	return b.events
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
	return nil
}

func (b *fakeBackend) combos() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]bool, len(b.registered))
	for _, hk := range b.registered {
		out[hk.String()] = true
	}
	return out
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}
