package hotkey

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		wantMods Modifiers
		wantKey  Code
	}{
		{"CTRL + SHIFT + L", ModCtrl | ModShift, KeyL},
		{"F7", 0, F7},
		{"ctrl+shift+l", ModCtrl | ModShift, KeyL},
		{"Control + Alt + Space", ModCtrl | ModAlt, Space},
		{"COMMAND + ]", ModMeta, BracketRight},
		{"META + SHIFT + pageup", ModShift | ModMeta, PageUp},
		{"  alt +  f12 ", ModAlt, F12},
	}

	for _, tc := range tests {
		hk, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.input, err)
			continue
		}
		if hk.Mods != tc.wantMods {
			t.Errorf("Parse(%q) mods = %q; want %q", tc.input, hk.Mods, tc.wantMods)
		}
		if hk.Key != tc.wantKey {
			t.Errorf("Parse(%q) key = %v; want %v", tc.input, hk.Key, tc.wantKey)
		}
		if hk.ID == 0 {
			t.Errorf("Parse(%q) returned zero ID", tc.input)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyKey},
		{"CTRL + ", ErrEmptyKey},
		{"CTRL + SHIFT", ErrEmptyKey},
		{"CTRL + A + B", ErrMultipleKeys},
		{"HYPER + A", ErrMultipleKeys},
		{"CTRL + F21", ErrUnsupportedKey},
		{"HYPER", ErrUnsupportedKey},
	}

	for _, tc := range tests {
		_, err := Parse(tc.input)
		if !errors.Is(err, tc.want) {
			t.Errorf("Parse(%q) err = %v; want %v", tc.input, err, tc.want)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"CTRL + SHIFT + L",
		"F7",
		"alt + meta + `",
		"shift + ctrl + alt + meta + 5",
		"CTRL + \\",
	}

	for _, in := range inputs {
		first, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", first.String(), err)
		}
		if !first.SameCombo(second) {
			t.Errorf("Round trip of %q: %v != %v", in, first, second)
		}
		if first.ID == second.ID {
			t.Errorf("Round trip of %q reused ID %d", in, first.ID)
		}
	}
}

func TestHotkey_String(t *testing.T) {
	hk, err := Parse("shift + ctrl + l")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := hk.String(); got != "CTRL + SHIFT + L" {
		t.Errorf("String() = %q; want %q", got, "CTRL + SHIFT + L")
	}
}
