//go:build windows

package config

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func platformPaths() (Paths, error) {
	local, err := windows.KnownFolderPath(windows.FOLDERID_LocalAppData, 0)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get LocalAppData folder: %w", err)
	}

	root := filepath.Join(local, appDirName)
	return Paths{
		ConfigDir: root,
		CacheDir:  filepath.Join(root, "cache"),
		LogDir:    filepath.Join(root, "logs"),
	}, nil
}
