// Package config provides centralized configuration defaults for the
// furigana command line tools.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFile represents the structure of config.toml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds all default values
type Defaults struct {
	Lexicon   string `toml:"lexicon"`   // extra word list, empty selects the embedded one
	Separator string `toml:"separator"` // between original and romanized column
	Quiet     bool   `toml:"quiet"`
	Verbose   bool   `toml:"verbose"`
	Metrics   bool   `toml:"metrics"`
}

// Hardcoded fallback defaults (used if config.toml not found)
var fallbackDefaults = Defaults{
	Lexicon:   "",
	Separator: "\t",
	Quiet:     false,
	Verbose:   false,
	Metrics:   true,
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load reads config.toml from the project root
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	// Try to find config.toml by walking up from executable or cwd
	paths := []string{
		"config.toml",
		"../config.toml",
		"../../config.toml",
	}

	// Also try from executable location
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "..", "config.toml"),
			filepath.Join(dir, "..", "..", "config.toml"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			var cfg ConfigFile
			if _, err := toml.DecodeFile(path, &cfg); err == nil {
				loaded = &cfg
				return loaded
			}
		}
	}

	// Return fallback if config.toml not found
	loaded = &ConfigFile{Defaults: fallbackDefaults}
	return loaded
}

// Convenience accessors that load config on first access
var (
	DefaultLexicon   = func() string { return Load().Defaults.Lexicon }
	DefaultSeparator = func() string { return Load().Defaults.Separator }
	DefaultQuiet     = func() bool { return Load().Defaults.Quiet }
	DefaultVerbose   = func() bool { return Load().Defaults.Verbose }
	DefaultMetrics   = func() bool { return Load().Defaults.Metrics }
)
