package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "spotify-hotkey"

// Paths holds the directories resolved once at startup.
type Paths struct {
	ConfigDir string
	CacheDir  string
	LogDir    string
}

// ResolvePaths finds the per-user directories for this platform and
// creates them.
func ResolvePaths() (Paths, error) {
	p, err := platformPaths()
	if err != nil {
		return Paths{}, err
	}
	return p, p.ensure()
}

// PathsAt lays every directory out under root, for portable installs and
// tests.
func PathsAt(root string) (Paths, error) {
	p := Paths{
		ConfigDir: root,
		CacheDir:  filepath.Join(root, "cache"),
		LogDir:    filepath.Join(root, "logs"),
	}
	return p, p.ensure()
}

func (p Paths) ensure() error {
	for _, dir := range []string{p.ConfigDir, p.CacheDir, p.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigFile is the TOML config location.
func (p Paths) ConfigFile() string { return filepath.Join(p.ConfigDir, "config.toml") }

// TokenFile is the OAuth token cache location.
func (p Paths) TokenFile() string { return filepath.Join(p.CacheDir, ".spotify_token.json") }

// HotkeyFile is the persisted hotkey cache location.
func (p Paths) HotkeyFile() string { return filepath.Join(p.CacheDir, "hotkeys.json") }

// LogFile is the application log location.
func (p Paths) LogFile() string { return filepath.Join(p.LogDir, appDirName+".log") }
