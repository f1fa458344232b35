// Package config loads user settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tunematch"

// KnownProviders lists the metadata providers that can be enabled.
var KnownProviders = []string{"musicbrainz", "itunes", "deezer"}

// Defaults.
const (
	DefaultMaxResults    = 25
	DefaultMinScore      = 0.5
	DefaultCacheTTLHours = 24
	DefaultArtworkSize   = 1000
	DefaultLogLevel      = "info"
)

type Config struct {
	DefaultFolder string   `koanf:"default_folder"` // empty means use cwd
	Providers     []string `koanf:"providers"`
	MaxResults    int      `koanf:"max_results"`
	MinScore      float64  `koanf:"min_score"`       // Threshold of the score filter (0.0-1.0)
	CacheTTLHours int      `koanf:"cache_ttl_hours"` // 0 disables the search cache

	Artwork ArtworkConfig `koanf:"artwork"`

	// Last.fm album art lookup (used when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Log LogConfig `koanf:"log"`
}

// ArtworkConfig controls cover art embedding on apply.
type ArtworkConfig struct {
	Enabled bool `koanf:"enabled"`
	MaxSize int  `koanf:"max_size"` // Longest side in pixels
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
	File  string `koanf:"file"`  // empty means the XDG state directory
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Providers:     slices.Clone(KnownProviders),
		MaxResults:    DefaultMaxResults,
		MinScore:      DefaultMinScore,
		CacheTTLHours: DefaultCacheTTLHours,
		Artwork: ArtworkConfig{
			Enabled: true,
			MaxSize: DefaultArtworkSize,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads the default config files, then explicit if it is not empty.
// An explicit file must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, err
		}
		paths = append(paths, explicit)
	}
	return loadFiles(paths)
}

func loadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Files are loaded in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	for i, p := range cfg.Providers {
		cfg.Providers[i] = strings.ToLower(strings.TrimSpace(p))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Providers) == 0 {
		errs = append(errs, errors.New("providers: at least one provider is required"))
	}
	for _, p := range c.Providers {
		if !slices.Contains(KnownProviders, p) {
			errs = append(errs, fmt.Errorf("providers: unknown provider %q (known: %s)",
				p, strings.Join(KnownProviders, ", ")))
		}
	}
	if c.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("max_results: must not be negative, got %d", c.MaxResults))
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		errs = append(errs, fmt.Errorf("min_score: must be within 0..1, got %v", c.MinScore))
	}
	if c.CacheTTLHours < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl_hours: must not be negative, got %d", c.CacheTTLHours))
	}
	if c.Artwork.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("artwork.max_size: must be positive, got %d", c.Artwork.MaxSize))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// CacheTTL returns the search cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// HasLastfmConfig returns true if Last.fm album art lookup is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tunematch/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
