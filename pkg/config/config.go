// Package config loads the optional per-project audit configuration.
package config

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/gemsec/gem-audit/pkg/utils"
)

// FileName is looked up next to the audited Gemfile.lock.
const FileName = ".gemaudit.toml"

type Config struct {
	// Ignore lists advisory identifiers (CVE-..., GHSA-..., OSVDB-...) to
	// suppress from audit results.
	Ignore []string `toml:"ignore"`

	Database Database `toml:"database"`
}

type Database struct {
	// Dir overrides the local database location.
	Dir string `toml:"dir"`

	// URL overrides the advisory repository synced by update.
	URL string `toml:"url"`
}

// DatabaseDir resolves the local database location from the command-line
// flag and the config file. An explicitly set flag wins; otherwise a
// non-empty config value overrides the flag default.
func (c *Config) DatabaseDir(flagValue string, flagSet bool) string {
	if c.Database.Dir != "" && !flagSet {
		return c.Database.Dir
	}
	return flagValue
}

// DatabaseURL resolves the advisory repository URL the same way.
func (c *Config) DatabaseURL(flagValue string, flagSet bool) string {
	if c.Database.URL != "" && !flagSet {
		return c.Database.URL
	}
	return flagValue
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, xerrors.Errorf("failed to load config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDir reads the config file from dir, returning an empty config when the
// file does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if ok, err := utils.Exists(path); err != nil {
		return nil, xerrors.Errorf("failed to stat config %s: %w", path, err)
	} else if !ok {
		return &Config{}, nil
	}
	return Load(path)
}
