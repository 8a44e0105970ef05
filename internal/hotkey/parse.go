package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	// ErrEmptyKey is returned when a hotkey string names no key.
	ErrEmptyKey = errors.New("hotkey has no key")
	// ErrMultipleKeys is returned when more than one non-modifier token is present.
	ErrMultipleKeys = errors.New("hotkey has more than one key")
)

// Hotkey is a parsed modifier+key combination with the descriptor ID used
// to correlate OS events back to it.
type Hotkey struct {
	Mods Modifiers
	Key  Code
	ID   uint32
}

var lastID atomic.Uint32

func nextID() uint32 {
	return lastID.Add(1)
}

// New builds a Hotkey with a fresh descriptor ID.
func New(mods Modifiers, key Code) Hotkey {
	return Hotkey{Mods: mods, Key: key, ID: nextID()}
}

// Parse converts a "MOD + MOD + KEY" string into a Hotkey.
// Tokens are case-insensitive and surrounding whitespace is ignored.
func Parse(s string) (Hotkey, error) {
	var mods Modifiers
	var keyToken string

	for _, part := range strings.Split(s, "+") {
		token := strings.ToUpper(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if mod, ok := parseModifier(token); ok {
			mods |= mod
			continue
		}
		if keyToken != "" {
			return Hotkey{}, fmt.Errorf("%w: %q and %q in %q", ErrMultipleKeys, keyToken, token, s)
		}
		keyToken = token
	}

	if keyToken == "" {
		return Hotkey{}, fmt.Errorf("%w: %q", ErrEmptyKey, s)
	}

	code, err := ParseCode(keyToken)
	if err != nil {
		return Hotkey{}, err
	}

	return New(mods, code), nil
}

// String renders the canonical form accepted by Parse, e.g. "CTRL + SHIFT + L".
func (h Hotkey) String() string {
	if h.Mods == 0 {
		return h.Key.String()
	}
	return h.Mods.String() + " + " + h.Key.String()
}

// SameCombo reports whether two hotkeys describe the same key combination,
// ignoring descriptor IDs.
func (h Hotkey) SameCombo(o Hotkey) bool {
	return h.Mods == o.Mods && h.Key == o.Key
}
