package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the stored Spotify credentials.
const (
	EnvClientID     = "SPOTIFY_ID"
	EnvClientSecret = "SPOTIFY_SECRET"
)

// ErrInvalidConfig is returned when the config file holds values outside
// their allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all application configuration
type Config struct {
	Spotify  SpotifyConfig  `toml:"spotify"`
	Callback CallbackConfig `toml:"callback"`
	Playback PlaybackConfig `toml:"playback"`
	Hotkeys  HotkeysConfig  `toml:"hotkeys"`
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
}

// SpotifyConfig holds the OAuth application settings
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// CallbackConfig is where the loopback callback server listens
type CallbackConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PlaybackConfig tunes the playback facade
type PlaybackConfig struct {
	VolumeStep        int     `toml:"volume_step"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// HotkeysConfig holds hotkey behaviour switches
type HotkeysConfig struct {
	WatchCache bool `toml:"watch_cache"`
}

// WindowConfig holds the window size
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// Addr returns the host:port the callback server binds.
func (c CallbackConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string
}

// New loads the config at path, writing the defaults there first if the
// file does not exist yet.
func New(path string) (*Service, error) {
	service := &Service{
		filePath: path,
		config:   getDefaultConfig(),
	}

	if _, err := os.Stat(path); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURI: "http://localhost:8888/callback",
		},
		Callback: CallbackConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Playback: PlaybackConfig{
			VolumeStep:        10,
			RequestsPerSecond: 5,
			Burst:             2,
			TimeoutSeconds:    10,
		},
		Hotkeys: HotkeysConfig{
			WatchCache: true,
		},
		Window: WindowConfig{
			Width:  500,
			Height: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Get returns the effective configuration: the file contents with
// credential overrides from the environment applied.
func (s *Service) Get() *Config {
	cfg := *s.config
	if id := os.Getenv(EnvClientID); id != "" {
		cfg.Spotify.ClientID = id
	}
	if secret := os.Getenv(EnvClientSecret); secret != "" {
		cfg.Spotify.ClientSecret = secret
	}
	return &cfg
}

// Load loads configuration from file. Keys missing from the file keep
// their default values.
func (s *Service) Load() error {
	cfg := getDefaultConfig()
	if _, err := toml.DecodeFile(s.filePath, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.config = cfg
	return nil
}

// Save saves configuration to file
func (s *Service) Save() error {
	f, err := os.Create(s.filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s.config)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string

	if c.Callback.Port < 1 || c.Callback.Port > 65535 {
		problems = append(problems, fmt.Sprintf("callback.port %d out of range", c.Callback.Port))
	}
	if c.Playback.VolumeStep < 1 || c.Playback.VolumeStep > 100 {
		problems = append(problems, fmt.Sprintf("playback.volume_step %d out of range", c.Playback.VolumeStep))
	}
	if c.Playback.RequestsPerSecond <= 0 {
		problems = append(problems, "playback.requests_per_second must be positive")
	}
	if c.Playback.Burst < 1 {
		problems = append(problems, "playback.burst must be at least 1")
	}
	if c.Playback.TimeoutSeconds < 1 {
		problems = append(problems, "playback.timeout_seconds must be at least 1")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q not one of debug, info, warn, error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
