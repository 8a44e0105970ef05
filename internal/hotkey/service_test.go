package hotkey

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"spotify-hotkey/internal/action"
)

func newTestService(t *testing.T) (*Service, *fakeBackend) {
	t.Helper()
	reg, backend := newTestRegistry(t)
	cache := NewCache(filepath.Join(t.TempDir(), "hotkeys.json"))
	return NewService(cache, reg, testLogger()), backend
}

func TestService_SetPersistsAndRegisters(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	failures, err := svc.Set(ctx, map[action.Action]string{
		action.PlayPause:  "ctrl + f7",
		action.NextTrack:  "CTRL + F21",
		action.VolumeDown: "",
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if len(failures) != 1 || !errors.Is(failures[action.NextTrack], ErrUnsupportedKey) {
		t.Errorf("Unexpected failures: %v", failures)
	}

	combos := backend.combos()
	if len(combos) != 1 || !combos["CTRL + F7"] {
		t.Errorf("Backend registered %v", combos)
	}

	// The raw strings are persisted, including the one that failed to parse.
	loaded, err := svc.Loaded()
	if err != nil {
		t.Fatalf("Loaded failed: %v", err)
	}
	if loaded["play_pause"] != "ctrl + f7" || loaded["next_track"] != "CTRL + F21" {
		t.Errorf("Unexpected persisted mapping: %v", loaded)
	}

	active := svc.Active()
	if len(active) != 1 || active["play_pause"] != "CTRL + F7" {
		t.Errorf("Unexpected active set: %v", active)
	}
}

func TestService_Restore(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	err := svc.cache.Save(map[string]string{
		"prev_track": "ALT + F6",
		"shuffle":    "ALT + S",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	failures, err := svc.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(failures) != 0 {
		t.Errorf("Unexpected failures: %v", failures)
	}

	combos := backend.combos()
	if len(combos) != 1 || !combos["ALT + F6"] {
		t.Errorf("Backend registered %v", combos)
	}
}

func TestService_RestoreWithoutCache(t *testing.T) {
	svc, backend := newTestService(t)

	if _, err := svc.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(backend.combos()) != 0 {
		t.Errorf("Expected no hotkeys, got %v", backend.combos())
	}
}

func TestService_ReloadIfChanged(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Set(ctx, map[action.Action]string{action.PlayPause: "F7"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Unchanged file is a no-op.
	if err := svc.reloadIfChanged(ctx); err != nil {
		t.Fatalf("reloadIfChanged failed: %v", err)
	}
	if combos := backend.combos(); len(combos) != 1 || !combos["F7"] {
		t.Errorf("Backend registered %v", combos)
	}

	if err := svc.cache.Save(map[string]string{"play_pause": "F8"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := svc.reloadIfChanged(ctx); err != nil {
		t.Fatalf("reloadIfChanged failed: %v", err)
	}
	if combos := backend.combos(); len(combos) != 1 || !combos["F8"] {
		t.Errorf("Expected reload to F8, backend has %v", combos)
	}
}
