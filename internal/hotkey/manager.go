package hotkey

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrManagerClosed is returned by Do after Close.
var ErrManagerClosed = errors.New("hotkey manager closed")

// Manager owns a Backend on a single locked OS thread. Platform hotkey
// facilities require registration and unregistration to happen on the
// thread that created them, so every call is marshaled through Do.
type Manager struct {
	backend Backend
	calls   chan func()
	done    chan struct{}
	once    sync.Once
	stopped chan struct{}
}

// NewManager starts the owning goroutine for backend.
func NewManager(backend Backend) *Manager {
	m := &Manager{
		backend: backend,
		calls:   make(chan func()),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Manager) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(m.stopped)

	for {
		select {
		case fn := <-m.calls:
			fn()
		case <-m.done:
			return
		}
	}
}

// Do runs fn on the owning thread and blocks until it returns. ctx only
// bounds the wait for the thread to pick the call up; once fn has started
// Do waits for it to finish.
func (m *Manager) Do(ctx context.Context, fn func(Backend)) error {
	finished := make(chan struct{})
	call := func() {
		defer close(finished)
		fn(m.backend)
	}

	select {
	case m.calls <- call:
	case <-m.done:
		return ErrManagerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

// Events exposes the backend's event stream.
func (m *Manager) Events() <-chan Event {
	return m.backend.Events()
}

// Close closes the backend on the owning thread and stops the loop.
func (m *Manager) Close() error {
	var err error
	m.once.Do(func() {
		finished := make(chan struct{})
		select {
		case m.calls <- func() {
			defer close(finished)
			err = m.backend.Close()
		}:
			<-finished
		case <-m.stopped:
		}
		close(m.done)
		<-m.stopped
	})
	return err
}
