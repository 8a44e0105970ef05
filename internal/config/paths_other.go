//go:build !windows

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

func platformPaths() (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get config directory: %w", err)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get cache directory: %w", err)
	}

	cache := filepath.Join(cacheDir, appDirName)
	return Paths{
		ConfigDir: filepath.Join(configDir, appDirName),
		CacheDir:  cache,
		LogDir:    filepath.Join(cache, "logs"),
	}, nil
}
