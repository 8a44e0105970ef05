//go:build darwin

package hotkey

import xhotkey "golang.design/x/hotkey"

var platformModifiers = map[Modifiers]xhotkey.Modifier{
	ModCtrl:  xhotkey.ModCtrl,
	ModAlt:   xhotkey.ModOption,
	ModShift: xhotkey.ModShift,
	ModMeta:  xhotkey.ModCmd,
}

// macOS virtual key codes (kVK_*). Apple keyboards have no PrintScreen,
// ScrollLock or Pause keys, so those stay unmapped.
var platformKeys = map[Code]xhotkey.Key{
	Minus:        0x1B,
	Equal:        0x18,
	Slash:        0x2C,
	Backslash:    0x2A,
	Semicolon:    0x29,
	Quote:        0x27,
	Comma:        0x2B,
	Period:       0x2F,
	BracketLeft:  0x21,
	BracketRight: 0x1E,
	Backquote:    0x32,
	Home:         0x73,
	End:          0x77,
	PageUp:       0x74,
	PageDown:     0x79,
	Delete:       0x75, // kVK_ForwardDelete
	Backspace:    0x33, // kVK_Delete
	Insert:       0x72, // kVK_Help
	NumLock:      0x47, // kVK_ANSI_KeypadClear
}
