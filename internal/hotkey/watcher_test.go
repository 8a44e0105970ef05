package hotkey

import (
	"context"
	"os"
	"testing"
	"time"

	"spotify-hotkey/internal/action"
)

func TestWatcher_ReloadsEditedCache(t *testing.T) {
	svc, backend := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- NewWatcher(svc, testLogger()).Run(ctx) }()

	// Rewrite until the watcher has picked the file up; writes made before
	// the directory watch is in place go unnoticed.
	content := []byte(`{"string_hotkeys":{"next_track":"ALT + F8"}}`)
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := os.WriteFile(svc.cache.Path(), content, 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		time.Sleep(reloadDelay + 100*time.Millisecond)
		if hk, ok := svc.Registry().Snapshot()[action.NextTrack]; ok {
			if hk.String() != "ALT + F8" {
				t.Errorf("Reloaded binding = %s; want ALT + F8", hk)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Edited cache was not reloaded")
		}
	}

	if combos := backend.combos(); len(combos) != 1 || !combos["ALT + F8"] {
		t.Errorf("Backend registered %v", combos)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Run did not stop after cancel")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	svc, backend := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- NewWatcher(svc, testLogger()).Run(ctx) }()

	other := svc.cache.Path() + ".bak"
	if err := os.WriteFile(other, []byte(`{"string_hotkeys":{"play_pause":"F7"}}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	time.Sleep(reloadDelay + 200*time.Millisecond)

	if combos := backend.combos(); len(combos) != 0 {
		t.Errorf("Unrelated file changed the registered set: %v", combos)
	}

	cancel()
	<-done
}
