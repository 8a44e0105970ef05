package hotkey

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCache_SaveAndRead(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nested", "hotkeys.json"))

	want := map[string]string{"play_pause": "CTRL + F7", "next_track": ""}
	if err := c.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != len(want) || got["play_pause"] != "CTRL + F7" {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if v, ok := got["next_track"]; !ok || v != "" {
		t.Errorf("Expected empty next_track entry, got %q (present=%v)", v, ok)
	}

	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if want := `{"string_hotkeys":{"next_track":"","play_pause":"CTRL + F7"}}`; string(data) != want {
		t.Errorf("Unexpected file contents: %s", data)
	}
}

func TestCache_LoadMissing(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "hotkeys.json"))

	if _, err := c.Read(); err == nil {
		t.Error("Expected error reading missing cache")
	}
	if got := c.Load(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty mapping, got %v", got)
	}
}

func TestCache_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	c := NewCache(path)

	if _, err := c.Read(); err == nil {
		t.Error("Expected decode error")
	}
	if got := c.Load(); len(got) != 0 {
		t.Errorf("Expected empty mapping, got %v", got)
	}
}

func TestCache_LoadWithoutKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := NewCache(path).Load()
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty mapping, got %v", got)
	}
}
