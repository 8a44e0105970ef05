package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	service, err := New(configPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Default config file was not created")
	}

	if err := service.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := service.Get()
	if cfg.Callback.Port != 8888 {
		t.Errorf("Default port = %d; want 8888", cfg.Callback.Port)
	}
	if cfg.Spotify.RedirectURI != "http://localhost:8888/callback" {
		t.Errorf("Unexpected redirect URI: %s", cfg.Spotify.RedirectURI)
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := getDefaultConfig()
	cfg.Spotify.ClientID = "test-id"
	cfg.Callback.Port = 9000

	service := &Service{filePath: configPath, config: cfg}
	if err := service.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "[spotify]") || !strings.Contains(string(data), `client_id = "test-id"`) {
		t.Errorf("Unexpected file contents:\n%s", data)
	}

	if err := service.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := service.Get().Callback.Port; got != 9000 {
		t.Errorf("Expected Port 9000, got %d", got)
	}
}

func TestConfig_LoadPartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[spotify]\nclient_id = \"loaded-id\"\n\n[playback]\nvolume_step = 5\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	service, err := New(configPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cfg := service.Get()
	if cfg.Spotify.ClientID != "loaded-id" {
		t.Errorf("Expected ClientID 'loaded-id', got %s", cfg.Spotify.ClientID)
	}
	if cfg.Playback.VolumeStep != 5 {
		t.Errorf("Expected VolumeStep 5, got %d", cfg.Playback.VolumeStep)
	}
	if cfg.Playback.TimeoutSeconds != 10 {
		t.Errorf("Expected default TimeoutSeconds 10, got %d", cfg.Playback.TimeoutSeconds)
	}
	if cfg.Callback.Addr() != "127.0.0.1:8888" {
		t.Errorf("Expected default callback addr, got %s", cfg.Callback.Addr())
	}
}

func TestConfig_LoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"port", "[callback]\nport = 70000\n", ErrInvalidConfig},
		{"level", "[log]\nlevel = \"loud\"\n", ErrInvalidConfig},
		{"step", "[playback]\nvolume_step = 0\n", ErrInvalidConfig},
		{"syntax", "[spotify\n", nil},
	}

	for _, tc := range tests {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte(tc.content), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		_, err := New(configPath)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	service, err := New(configPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Setenv(EnvClientID, "env-id")
	t.Setenv(EnvClientSecret, "env-secret")

	cfg := service.Get()
	if cfg.Spotify.ClientID != "env-id" || cfg.Spotify.ClientSecret != "env-secret" {
		t.Errorf("Env overrides not applied: %+v", cfg.Spotify)
	}

	// Overrides must not leak into the file.
	if err := service.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(data), "env-secret") {
		t.Error("Secret from environment was written to the config file")
	}
}

func TestPathsAt(t *testing.T) {
	root := t.TempDir()
	p, err := PathsAt(root)
	if err != nil {
		t.Fatalf("PathsAt failed: %v", err)
	}

	for _, dir := range []string{p.ConfigDir, p.CacheDir, p.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("Directory %s not created", dir)
		}
	}
	if p.TokenFile() != filepath.Join(root, "cache", ".spotify_token.json") {
		t.Errorf("Unexpected token file: %s", p.TokenFile())
	}
	if p.HotkeyFile() != filepath.Join(root, "cache", "hotkeys.json") {
		t.Errorf("Unexpected hotkey file: %s", p.HotkeyFile())
	}
	if filepath.Base(p.LogFile()) != "spotify-hotkey.log" {
		t.Errorf("Unexpected log file: %s", p.LogFile())
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := getDefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
	if cfg.Playback.VolumeStep != 10 {
		t.Errorf("Expected default volume step 10, got %d", cfg.Playback.VolumeStep)
	}
	if !cfg.Hotkeys.WatchCache {
		t.Error("Expected cache watching on by default")
	}
	if cfg.Window.Width != 500 || cfg.Window.Height != 500 {
		t.Errorf("Expected 500x500 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}
