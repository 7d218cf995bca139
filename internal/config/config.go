// Package config loads the process-wide configuration: built-in defaults,
// an optional .readmanifest.yaml file, then READMANIFEST_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/indaco/readmanifest/internal/core"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = ".readmanifest.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "READMANIFEST_"

	// DefaultMaxDepth bounds how deep a path source scans for nested packages.
	DefaultMaxDepth = core.MaxDiscoveryDepth
)

// Config is the process-wide configuration object.
type Config struct {
	Color     ColorChoice     `koanf:"color"`
	Verbose   bool            `koanf:"verbose"`
	Log       LogConfig       `koanf:"log"`
	Discovery DiscoveryConfig `koanf:"discovery"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error, disabled).
	Level string `koanf:"level"`
}

// DiscoveryConfig controls the package scan performed by path sources.
type DiscoveryConfig struct {
	// Exclude holds glob patterns matched against entry names and paths.
	Exclude []string `koanf:"exclude"`

	// MaxDepth is the number of directory levels scanned below the root.
	MaxDepth int `koanf:"max_depth"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Color:     ColorAuto,
		Log:       LogConfig{Level: "warn"},
		Discovery: DiscoveryConfig{MaxDepth: DefaultMaxDepth},
	}
}

// LoadFn is the loader used by the CLI. Tests may replace it.
var LoadFn = Load

// Load builds the configuration. When path is empty, ConfigFileName is read
// from dir if it exists; an explicit path must exist.
func Load(dir, path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	def := Default()
	_ = k.Set("color", string(def.Color))
	_ = k.Set("verbose", def.Verbose)
	_ = k.Set("log.level", def.Log.Level)
	_ = k.Set("discovery.max_depth", def.Discovery.MaxDepth)

	// 1. Load from file
	if path == "" {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %q: %w", candidate, err)
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}

	// 2. Load from ENV (READMANIFEST_DISCOVERY_MAX_DEPTH -> discovery.max_depth)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps an environment variable onto a config key. Only the first
// underscore separates a section from its field.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
