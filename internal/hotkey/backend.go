package hotkey

import (
	"errors"
	"fmt"
	"sync"

	xhotkey "golang.design/x/hotkey"
)

// State is the key transition reported by an Event.
type State int

const (
	Pressed State = iota
	Released
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a raw hotkey transition from the OS layer.
type Event struct {
	ID    uint32
	State State
}

var (
	ErrAlreadyRegistered = errors.New("hotkey already registered")
	ErrNotRegistered     = errors.New("hotkey not registered")
	ErrBackendClosed     = errors.New("hotkey backend closed")
)

// Backend registers hotkeys with the operating system and reports their
// events. The events channel is closed once the backend is closed.
type Backend interface {
	Register(hk Hotkey) error
	Unregister(hk Hotkey) error
	Events() <-chan Event
	Close() error
}

// OSBackend implements Backend on top of golang.design/x/hotkey.
type OSBackend struct {
	mu     sync.Mutex
	active map[uint32]*registration
	events chan Event
	wg     sync.WaitGroup
	closed bool
}

type registration struct {
	hotkey Hotkey
	native *xhotkey.Hotkey
	stop   chan struct{}
}

// NewOSBackend creates a backend bound to the platform hotkey facility.
func NewOSBackend() *OSBackend {
	return &OSBackend{
		active: make(map[uint32]*registration),
		events: make(chan Event, 16),
	}
}

// Register grabs the key combination system wide.
func (b *OSBackend) Register(hk Hotkey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}
	if _, exists := b.active[hk.ID]; exists {
		return fmt.Errorf("%w: id %d", ErrAlreadyRegistered, hk.ID)
	}
	for _, reg := range b.active {
		if reg.hotkey.SameCombo(hk) {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, hk)
		}
	}

	key, err := nativeKey(hk.Key)
	if err != nil {
		return err
	}

	native := xhotkey.New(nativeModifiers(hk.Mods), key)
	if err := native.Register(); err != nil {
		return fmt.Errorf("failed to register %s: %w", hk, err)
	}

	reg := &registration{
		hotkey: hk,
		native: native,
		stop:   make(chan struct{}),
	}
	b.active[hk.ID] = reg

	b.wg.Add(1)
	go b.forward(reg)

	return nil
}

// forward relays one hotkey's keydown/keyup notifications as Events.
func (b *OSBackend) forward(reg *registration) {
	defer b.wg.Done()

	down := reg.native.Keydown()
	up := reg.native.Keyup()

	for down != nil || up != nil {
		var ev Event
		select {
		case <-reg.stop:
			return
		case _, ok := <-down:
			if !ok {
				down = nil
				continue
			}
			ev = Event{ID: reg.hotkey.ID, State: Pressed}
		case _, ok := <-up:
			if !ok {
				up = nil
				continue
			}
			ev = Event{ID: reg.hotkey.ID, State: Released}
		}

		select {
		case b.events <- ev:
		case <-reg.stop:
			return
		}
	}
}

// Unregister releases a previously registered hotkey.
func (b *OSBackend) Unregister(hk Hotkey) error {
	b.mu.Lock()
	reg, exists := b.active[hk.ID]
	if exists {
		delete(b.active, hk.ID)
		close(reg.stop)
	}
	b.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrNotRegistered, hk)
	}
	return reg.native.Unregister()
}

// Events returns the channel of hotkey transitions.
func (b *OSBackend) Events() <-chan Event {
	return b.events
}

// Close unregisters everything and closes the events channel.
func (b *OSBackend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	var errs []error
	for id, reg := range b.active {
		close(reg.stop)
		if err := reg.native.Unregister(); err != nil {
			errs = append(errs, err)
		}
		delete(b.active, id)
	}
	b.mu.Unlock()

	b.wg.Wait()
	close(b.events)

	return errors.Join(errs...)
}
