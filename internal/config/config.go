// Package config loads the replaykk configuration file.
//
// Settings are taken, highest priority first, from command-line flags, the
// configuration file, and the defaults in Default. This package handles the
// file and the defaults; flags are applied over the result by the caller.
//
// The file is YAML:
//
//	base_dir: /home/me/.quoridor
//	records_dir: /home/me/.quoridor/records
//	log_file: replaykk.log
//	verbosity: verbose
//	history: false
package config

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"dekarrin/replaykk/internal/replays"
	"dekarrin/replaykk/internal/verbosity"
	"gopkg.in/yaml.v2"
)

// Config is the full configuration of replaykk.
type Config struct {
	// BaseDir is the storage root.
	BaseDir string `yaml:"base_dir"`

	// RecordsDir overrides the records directory. Empty means "records"
	// within BaseDir.
	RecordsDir string `yaml:"records_dir,omitempty"`

	// LogFile, if set, receives a copy of every message.
	LogFile string `yaml:"log_file,omitempty"`

	// Verbosity is the name of the output verbosity; see verbosity.ParseName.
	Verbosity string `yaml:"verbosity,omitempty"`

	// History turns shell history on or off. A nil value means on.
	History *bool `yaml:"history,omitempty"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		BaseDir:   replays.DefaultBaseDir,
		Verbosity: verbosity.Normal.String(),
	}
}

// Load reads the YAML file at path over the defaults. Unknown keys are an
// error. Relative directories in the file are taken relative to the file's own
// directory.
func Load(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	rel := filepath.Dir(path)
	cfg.BaseDir = resolve(rel, cfg.BaseDir)
	cfg.RecordsDir = resolve(rel, cfg.RecordsDir)
	cfg.LogFile = resolve(rel, cfg.LogFile)
	return cfg, nil
}

// Parse reads YAML configuration data over the defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting holds a usable value.
func (c Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	if _, err := verbosity.ParseName(c.Verbosity); err != nil {
		return fmt.Errorf("verbosity: %w", err)
	}
	return nil
}

// HistoryEnabled reports whether the shell should keep history.
func (c Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// OutputVerbosity gives the parsed Verbosity setting. An invalid name gives
// verbosity.Normal.
func (c Config) OutputVerbosity() verbosity.Verbosity {
	v, err := verbosity.ParseName(c.Verbosity)
	if err != nil {
		return verbosity.Normal
	}
	return v
}

// WithBaseDir returns a copy of c whose store lives under dir. Any
// records_dir from the file is dropped, so records go in dir's own records
// directory.
func (c Config) WithBaseDir(dir string) Config {
	c.BaseDir = dir
	c.RecordsDir = ""
	return c
}

// Replays gives the store configuration.
func (c Config) Replays() replays.Config {
	return replays.Config{
		BaseDir:    c.BaseDir,
		RecordsDir: c.RecordsDir,
	}
}

// YAML renders the configuration in the same format Load reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
