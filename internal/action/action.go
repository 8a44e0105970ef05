package action

import (
	"errors"
	"fmt"
)

// Action is one of the playback commands a hotkey can be bound to.
type Action int

const (
	PlayPause Action = iota + 1
	NextTrack
	PrevTrack
	VolumeUp
	VolumeDown
)

// ErrUnknownAction is returned by Parse for names outside the action set.
var ErrUnknownAction = errors.New("unknown action")

var names = map[Action]string{
	PlayPause:  "play_pause",
	NextTrack:  "next_track",
	PrevTrack:  "prev_track",
	VolumeUp:   "volume_up",
	VolumeDown: "volume_down",
}

// All returns every action in a stable order.
func All() []Action {
	return []Action{PlayPause, NextTrack, PrevTrack, VolumeUp, VolumeDown}
}

// String returns the wire name used in the hotkey cache and the frontend.
func (a Action) String() string {
	if name, ok := names[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Parse resolves a wire name to its Action.
func Parse(name string) (Action, error) {
	for a, n := range names {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
