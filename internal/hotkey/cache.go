package hotkey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// cacheFile is the on-disk layout of the hotkey cache.
type cacheFile struct {
	StringHotkeys map[string]string `json:"string_hotkeys"`
}

// Cache persists the action name to hotkey string mapping. The string
// form is stored rather than the parsed binding so it can be re-parsed
// at the next launch.
type Cache struct {
	path string
}

// NewCache returns a cache stored at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Save overwrites the cache with mapping.
func (c *Cache) Save(mapping map[string]string) error {
	if mapping == nil {
		mapping = map[string]string{}
	}

	data, err := json.Marshal(cacheFile{StringHotkeys: mapping})
	if err != nil {
		return fmt.Errorf("failed to encode hotkey cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create hotkey cache directory: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write hotkey cache: %w", err)
	}
	return nil
}

// Read decodes the cache, reporting missing or malformed files.
func (c *Cache) Read() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hotkey cache: %w", err)
	}

	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to decode hotkey cache: %w", err)
	}
	if cf.StringHotkeys == nil {
		cf.StringHotkeys = map[string]string{}
	}
	return cf.StringHotkeys, nil
}

// Load is Read with failures mapped to an empty mapping, so a cold start
// behaves like no hotkeys configured.
func (c *Cache) Load() map[string]string {
	mapping, err := c.Read()
	if err != nil {
		return map[string]string{}
	}
	return mapping
}
