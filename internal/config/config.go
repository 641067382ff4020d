// Package config loads tlc.toml project settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/tinylang/tlc/internal/diagnostic"
)

// FileName is the configuration file searched for next to sources.
const FileName = "tlc.toml"

// Config is the decoded form of tlc.toml.
type Config struct {
	Compiler CompilerConfig `toml:"compiler"`
	Output   OutputConfig   `toml:"output"`
	Watch    WatchConfig    `toml:"watch"`
}

// CompilerConfig pins the compiler a project expects.
type CompilerConfig struct {
	Version string `toml:"version"` // semver constraint, e.g. ">= 0.1.0"
}

// OutputConfig controls what is printed after a successful check.
type OutputConfig struct {
	AST     bool   `toml:"ast"`
	Symbols bool   `toml:"symbols"`
	Color   string `toml:"color"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// DefaultConfig returns the settings used when no tlc.toml exists.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Symbols: true,
			Color:   string(diagnostic.ColorAuto),
		},
		Watch: WatchConfig{
			DebounceMS: 150,
		},
	}
}

// FindAndLoad searches upward from startDir for tlc.toml and loads it. When
// no file is found the defaults are returned with an empty path.
func FindAndLoad(startDir string) (*Config, string, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// FindConfigFile returns the nearest tlc.toml at or above startDir, or "".
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result. Keys the
// decoder does not know are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if _, err := diagnostic.ParseColorMode(c.Output.Color); err != nil {
		return err
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	if c.Compiler.Version != "" {
		if _, err := semver.NewConstraint(c.Compiler.Version); err != nil {
			return fmt.Errorf("invalid compiler.version constraint %q: %w", c.Compiler.Version, err)
		}
	}
	return nil
}

// CheckVersion verifies that the running compiler satisfies the project's
// version constraint. An empty constraint accepts every version.
func (c *Config) CheckVersion(running string) error {
	if c.Compiler.Version == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Compiler.Version)
	if err != nil {
		return fmt.Errorf("invalid compiler.version constraint %q: %w", c.Compiler.Version, err)
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", running, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("compiler version %s does not satisfy %q", v, c.Compiler.Version)
	}
	return nil
}

// ColorMode returns the parsed output color setting.
func (c *Config) ColorMode() diagnostic.ColorMode {
	mode, err := diagnostic.ParseColorMode(c.Output.Color)
	if err != nil {
		return diagnostic.ColorAuto
	}
	return mode
}

// Debounce returns the watch debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
