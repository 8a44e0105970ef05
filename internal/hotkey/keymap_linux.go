//go:build linux

package hotkey

import xhotkey "golang.design/x/hotkey"

// On X11 Alt is usually Mod1 and Super is Mod4.
var platformModifiers = map[Modifiers]xhotkey.Modifier{
	ModCtrl:  xhotkey.ModCtrl,
	ModAlt:   xhotkey.Mod1,
	ModShift: xhotkey.ModShift,
	ModMeta:  xhotkey.Mod4,
}

// X11 keysyms.
var platformKeys = map[Code]xhotkey.Key{
	Minus:        0x002d,
	Equal:        0x003d,
	Slash:        0x002f,
	Backslash:    0x005c,
	Semicolon:    0x003b,
	Quote:        0x0027,
	Comma:        0x002c,
	Period:       0x002e,
	BracketLeft:  0x005b,
	BracketRight: 0x005d,
	Backquote:    0x0060,
	Home:         0xff50,
	End:          0xff57,
	PageUp:       0xff55,
	PageDown:     0xff56,
	Delete:       0xffff,
	Backspace:    0xff08,
	PrintScreen:  0xff61,
	ScrollLock:   0xff14,
	Pause:        0xff13,
	Insert:       0xff63,
	NumLock:      0xff7f,
}
