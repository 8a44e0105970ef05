package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a platform independent key code.
type Code int

const (
	CodeUnknown Code = iota

	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Space
	Enter
	Minus
	Equal
	Slash
	Backslash
	Semicolon
	Quote
	Comma
	Period
	BracketLeft
	BracketRight
	Backquote
	Home
	End
	PageUp
	PageDown
	Delete
	Backspace
	Escape
	Tab
	PrintScreen
	ScrollLock
	Pause
	Insert
	NumLock

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
)

var (
	// ErrUnsupportedKey is returned for tokens outside the supported key set.
	ErrUnsupportedKey = errors.New("unsupported key")
	// ErrUnsupportedOnPlatform is returned when a key has no native code on this OS.
	ErrUnsupportedOnPlatform = errors.New("key not available on this platform")
)

// codeNames is the canonical token for every supported Code.
var codeNames = map[Code]string{
	Digit0: "0", Digit1: "1", Digit2: "2", Digit3: "3", Digit4: "4",
	Digit5: "5", Digit6: "6", Digit7: "7", Digit8: "8", Digit9: "9",

	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",

	Space:        "SPACE",
	Enter:        "ENTER",
	Minus:        "-",
	Equal:        "=",
	Slash:        "/",
	Backslash:    `\`,
	Semicolon:    ";",
	Quote:        "'",
	Comma:        ",",
	Period:       ".",
	BracketLeft:  "[",
	BracketRight: "]",
	Backquote:    "`",
	Home:         "HOME",
	End:          "END",
	PageUp:       "PAGEUP",
	PageDown:     "PAGEDOWN",
	Delete:       "DELETE",
	Backspace:    "BACKSPACE",
	Escape:       "ESCAPE",
	Tab:          "TAB",
	PrintScreen:  "PRINTSCREEN",
	ScrollLock:   "SCROLLLOCK",
	Pause:        "PAUSE",
	Insert:       "INSERT",
	NumLock:      "NUMLOCK",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5",
	F6: "F6", F7: "F7", F8: "F8", F9: "F9", F10: "F10",
	F11: "F11", F12: "F12", F13: "F13", F14: "F14", F15: "F15",
	F16: "F16", F17: "F17", F18: "F18", F19: "F19", F20: "F20",
}

var codesByName = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for code, name := range codeNames {
		m[name] = code
	}
	return m
}()

// ParseCode translates an upper-cased key token into a Code.
func ParseCode(token string) (Code, error) {
	if code, ok := codesByName[token]; ok {
		return code, nil
	}
	return CodeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedKey, token)
}

// String returns the canonical token, which ParseCode accepts.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Modifiers is a bitset of modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

var modifierOrder = []struct {
	mod  Modifiers
	name string
}{
	{ModCtrl, "CTRL"},
	{ModAlt, "ALT"},
	{ModShift, "SHIFT"},
	{ModMeta, "META"},
}

// parseModifier recognises modifier keywords, including common aliases.
func parseModifier(token string) (Modifiers, bool) {
	switch token {
	case "CTRL", "CONTROL":
		return ModCtrl, true
	case "ALT", "OPTION":
		return ModAlt, true
	case "SHIFT":
		return ModShift, true
	case "META", "COMMAND", "CMD", "SUPER", "WIN":
		return ModMeta, true
	}
	return 0, false
}

// Has reports whether every bit of m2 is set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// String renders the modifiers in canonical order joined by " + ".
func (m Modifiers) String() string {
	parts := make([]string, 0, len(modifierOrder))
	for _, mo := range modifierOrder {
		if m.Has(mo.mod) {
			parts = append(parts, mo.name)
		}
	}
	return strings.Join(parts, " + ")
}
