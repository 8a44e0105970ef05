//go:build windows

package hotkey

import xhotkey "golang.design/x/hotkey"

var platformModifiers = map[Modifiers]xhotkey.Modifier{
	ModCtrl:  xhotkey.ModCtrl,
	ModAlt:   xhotkey.ModAlt,
	ModShift: xhotkey.ModShift,
	ModMeta:  xhotkey.ModWin,
}

// Win32 virtual-key codes.
var platformKeys = map[Code]xhotkey.Key{
	Minus:        0xBD, // VK_OEM_MINUS
	Equal:        0xBB, // VK_OEM_PLUS
	Slash:        0xBF, // VK_OEM_2
	Backslash:    0xDC, // VK_OEM_5
	Semicolon:    0xBA, // VK_OEM_1
	Quote:        0xDE, // VK_OEM_7
	Comma:        0xBC,
	Period:       0xBE,
	BracketLeft:  0xDB,
	BracketRight: 0xDD,
	Backquote:    0xC0, // VK_OEM_3
	Home:         0x24,
	End:          0x23,
	PageUp:       0x21,
	PageDown:     0x22,
	Delete:       0x2E,
	Backspace:    0x08,
	PrintScreen:  0x2C,
	ScrollLock:   0x91,
	Pause:        0x13,
	Insert:       0x2D,
	NumLock:      0x90,
}
