package hotkey

import (
	"fmt"

	xhotkey "golang.design/x/hotkey"
)

// commonKeys holds the codes the hotkey library names on every platform.
// Platform files add the rest in platformKeys.
var commonKeys = map[Code]xhotkey.Key{
	Digit0: xhotkey.Key0, Digit1: xhotkey.Key1, Digit2: xhotkey.Key2,
	Digit3: xhotkey.Key3, Digit4: xhotkey.Key4, Digit5: xhotkey.Key5,
	Digit6: xhotkey.Key6, Digit7: xhotkey.Key7, Digit8: xhotkey.Key8,
	Digit9: xhotkey.Key9,

	KeyA: xhotkey.KeyA, KeyB: xhotkey.KeyB, KeyC: xhotkey.KeyC, KeyD: xhotkey.KeyD,
	KeyE: xhotkey.KeyE, KeyF: xhotkey.KeyF, KeyG: xhotkey.KeyG, KeyH: xhotkey.KeyH,
	KeyI: xhotkey.KeyI, KeyJ: xhotkey.KeyJ, KeyK: xhotkey.KeyK, KeyL: xhotkey.KeyL,
	KeyM: xhotkey.KeyM, KeyN: xhotkey.KeyN, KeyO: xhotkey.KeyO, KeyP: xhotkey.KeyP,
	KeyQ: xhotkey.KeyQ, KeyR: xhotkey.KeyR, KeyS: xhotkey.KeyS, KeyT: xhotkey.KeyT,
	KeyU: xhotkey.KeyU, KeyV: xhotkey.KeyV, KeyW: xhotkey.KeyW, KeyX: xhotkey.KeyX,
	KeyY: xhotkey.KeyY, KeyZ: xhotkey.KeyZ,

	Space:  xhotkey.KeySpace,
	Enter:  xhotkey.KeyReturn,
	Escape: xhotkey.KeyEscape,
	Tab:    xhotkey.KeyTab,

	F1: xhotkey.KeyF1, F2: xhotkey.KeyF2, F3: xhotkey.KeyF3, F4: xhotkey.KeyF4,
	F5: xhotkey.KeyF5, F6: xhotkey.KeyF6, F7: xhotkey.KeyF7, F8: xhotkey.KeyF8,
	F9: xhotkey.KeyF9, F10: xhotkey.KeyF10, F11: xhotkey.KeyF11, F12: xhotkey.KeyF12,
	F13: xhotkey.KeyF13, F14: xhotkey.KeyF14, F15: xhotkey.KeyF15, F16: xhotkey.KeyF16,
	F17: xhotkey.KeyF17, F18: xhotkey.KeyF18, F19: xhotkey.KeyF19, F20: xhotkey.KeyF20,
}

// nativeKey maps a Code to the library key for the running platform.
func nativeKey(c Code) (xhotkey.Key, error) {
	if k, ok := commonKeys[c]; ok {
		return k, nil
	}
	if k, ok := platformKeys[c]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedOnPlatform, c)
}

// nativeModifiers expands the bitset into the library's modifier list.
func nativeModifiers(m Modifiers) []xhotkey.Modifier {
	mods := make([]xhotkey.Modifier, 0, 4)
	for _, mo := range modifierOrder {
		if m.Has(mo.mod) {
			mods = append(mods, platformModifiers[mo.mod])
		}
	}
	return mods
}
