package hotkey

import (
	"context"

	"github.com/charmbracelet/log"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/result"
)

// Performer executes a bound action.
type Performer interface {
	Perform(ctx context.Context, a action.Action) result.Result
}

// Dispatcher turns released hotkey events into actions.
type Dispatcher struct {
	events    <-chan Event
	registry  *Registry
	performer Performer
	onResult  func(action.Action, result.Result)
	log       *log.Logger
}

// NewDispatcher wires an event stream to the registry and performer.
func NewDispatcher(events <-chan Event, registry *Registry, performer Performer, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		events:    events,
		registry:  registry,
		performer: performer,
		log:       logger,
	}
}

// OnResult sets a callback invoked after each dispatched action.
func (d *Dispatcher) OnResult(fn func(action.Action, result.Result)) {
	d.onResult = fn
}

// Run consumes events until ctx is cancelled or the event channel is
// closed. It is meant to be started once, in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("Hotkey event listener started")
	defer d.log.Info("Hotkey event listener ended")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.events:
			if !ok {
				d.log.Error("Hotkey event channel disconnected")
				return
			}
			if ev.State == Released {
				d.handle(ctx, ev.ID)
			}
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, id uint32) {
	a, ok := d.registry.Lookup(id)
	if !ok {
		d.log.Error("Hotkey ID not bound to any action", "id", id)
		return
	}

	res := d.performer.Perform(ctx, a)
	if res.IsSuccess() {
		d.log.Debug("Hotkey action performed", "action", a)
	} else {
		d.log.Error("Hotkey action failed", "action", a, "result", res)
	}

	if d.onResult != nil {
		d.onResult(a, res)
	}
}
