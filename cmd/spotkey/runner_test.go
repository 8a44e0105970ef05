package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/app"
	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/result"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")

	paths, err := config.PathsAt(t.TempDir())
	if err != nil {
		t.Fatalf("PathsAt failed: %v", err)
	}
	core, err := app.New(paths)
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(func() { core.Close() })

	var out bytes.Buffer
	return NewRunner(RunnerOpts{Core: core, Output: &out}), &out
}

func runCommand(r *Runner, args ...string) error {
	root := &cli.Command{
		Name:     "spotkey",
		Commands: r.register(),
	}
	return root.Run(context.Background(), append([]string{"spotkey"}, args...))
}

func TestRunner_Report(t *testing.T) {
	r, out := newTestRunner(t)

	if err := r.report(result.Success()); err != nil {
		t.Errorf("Success reported as error: %v", err)
	}
	if err := r.report(result.Errorf("No active playback")); !errors.Is(err, errFailed) {
		t.Errorf("Expected errFailed, got %v", err)
	}
	if err := r.report(result.NeedsAuth("https://example.test/authorize")); !errors.Is(err, errFailed) {
		t.Errorf("Expected errFailed, got %v", err)
	}

	text := out.String()
	for _, want := range []string{"✓ ok", "✗ No active playback", "https://example.test/authorize"} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing %q:\n%s", want, text)
		}
	}
}

func TestRunner_HotkeysSetAndList(t *testing.T) {
	r, out := newTestRunner(t)

	if err := runCommand(r, "hotkeys", "set", "--play-pause", "ctrl + f7", "--next-track", "CTRL + F8"); err != nil {
		t.Fatalf("hotkeys set failed: %v\n%s", err, out.String())
	}
	if err := runCommand(r, "hotkeys", "set", "--next-track", ""); err != nil {
		t.Fatalf("hotkeys set failed: %v\n%s", err, out.String())
	}

	out.Reset()
	if err := runCommand(r, "hotkeys", "list"); err != nil {
		t.Fatalf("hotkeys list failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "play_pause") || !strings.Contains(text, "ctrl + f7") {
		t.Errorf("play_pause binding not kept:\n%s", text)
	}
	if strings.Contains(text, "CTRL + F8") {
		t.Errorf("next_track binding not cleared:\n%s", text)
	}
}

func TestRunner_HotkeysSetInvalid(t *testing.T) {
	r, out := newTestRunner(t)

	err := runCommand(r, "hotkeys", "set", "--play-pause", "F7", "--volume-up", "CTRL + A + B")
	if err != nil {
		t.Errorf("Expected a partial set to succeed, got %v", err)
	}
	if !strings.Contains(out.String(), "skipped volume_up") {
		t.Errorf("Skipped binding not reported:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "✓ ok") {
		t.Errorf("Expected success line:\n%s", out.String())
	}
}

func TestRunner_HotkeysListEmpty(t *testing.T) {
	r, _ := newTestRunner(t)

	err := runCommand(r, "hotkeys", "list")
	if err == nil || !strings.Contains(err.Error(), "failed to load hotkeys") {
		t.Errorf("Expected 'failed to load hotkeys', got %v", err)
	}
}

func TestRunner_StatusWithoutCredentials(t *testing.T) {
	r, out := newTestRunner(t)

	if err := runCommand(r, "status"); !errors.Is(err, errFailed) {
		t.Errorf("Expected errFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "client ID") {
		t.Errorf("Expected credentials message, got:\n%s", out.String())
	}
}

func TestRunner_LogoutWithoutCredentials(t *testing.T) {
	r, out := newTestRunner(t)

	if err := runCommand(r, "logout"); !errors.Is(err, errFailed) {
		t.Errorf("Expected errFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "client ID") {
		t.Errorf("Expected credentials message, got:\n%s", out.String())
	}
}

func TestFlagName(t *testing.T) {
	if got := flagName(action.VolumeDown); got != "volume-down" {
		t.Errorf("flagName = %q; want volume-down", got)
	}
}
