// Package config provides configuration and path management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name.
	AppName = "cconv"

	// ConfigDirName is the per-user configuration directory name.
	ConfigDirName = ".cconv"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.yaml"

	// DefaultTarget is the scheme names are converted to when none is given.
	DefaultTarget = "iso3"

	// SimilarityCutoff is the minimum ratio for a scheme name to be accepted
	// as a fuzzy match of a valid scheme.
	SimilarityCutoff = 0.55

	// UNMemberScheme holds the UN membership year of a record.
	UNMemberScheme = "unmember"
)

// ErrInvalid marks a configuration or data-schema error: an unknown index
// scheme, a malformed data file or an extra record that does not fit the
// bundled table.
var ErrInvalid = errors.New("invalid configuration")

// DefaultExcludePrefixes mark the part of a name that is cut before lookup
// ("Asia excluding China" is looked up as "Asia").
var DefaultExcludePrefixes = []string{`excl\w.*`, "without", "w/o"}

// Config holds runtime configuration.
type Config struct {
	Target          string   `yaml:"target"`
	NotFound        *string  `yaml:"not_found"`
	ExcludePrefixes []string `yaml:"exclude_prefixes"`
	AdditionalData  []string `yaml:"additional_data"`
	OnlyUNMembers   bool     `yaml:"only_un_members"`
	JSONOutput      bool     `yaml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Target:          DefaultTarget,
		ExcludePrefixes: append([]string(nil), DefaultExcludePrefixes...),
	}
}

// DefaultConfigDir returns the default configuration directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}

// Load reads a YAML configuration file on top of DefaultConfig.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w: %w", path, ErrInvalid, err)
	}

	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if len(cfg.ExcludePrefixes) == 0 {
		cfg.ExcludePrefixes = append([]string(nil), DefaultExcludePrefixes...)
	}

	// Relative data paths are relative to the config file.
	dir := filepath.Dir(path)
	for i, p := range cfg.AdditionalData {
		if !filepath.IsAbs(p) {
			cfg.AdditionalData[i] = filepath.Join(dir, p)
		}
	}

	return cfg, nil
}
