// Package config loads the configuration of the esval command.
//
// The configuration is a YAML file:
//
//	strict: false
//	max-depth: 2000
//	max-call-depth: 400
//	budget:
//	  max-steps: 1000000
//	  timeout: 5s
//	history: ~/.local/state/esval/history.db
//
// Unknown fields are rejected. Fields that are absent keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"src.esval.dev/pkg/env"
	"src.esval.dev/pkg/eval"
	"src.esval.dev/pkg/logutil"
	"src.esval.dev/pkg/realm"
)

var logger = logutil.GetLogger("[config] ")

// Config is the configuration of the esval command.
type Config struct {
	// Strict evaluates documents as strict mode code even when they carry no
	// "use strict" directive.
	Strict bool `yaml:"strict"`
	// MaxDepth is the nesting depth limit of the evaluator; 0 means no limit.
	MaxDepth int `yaml:"max-depth"`
	// MaxCallDepth is the function call depth limit; a negative value means
	// no limit.
	MaxCallDepth int    `yaml:"max-call-depth"`
	Budget       Budget `yaml:"budget"`
	// History is the path of the history database. An empty path turns
	// history off.
	History string `yaml:"history"`
}

// Budget limits each evaluation.
type Budget struct {
	// MaxSteps is the maximum number of evaluation steps; 0 means no limit.
	MaxSteps int `yaml:"max-steps"`
	// Timeout is the maximum duration of one evaluation; 0 means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when there is no configuration
// file. History is off by default.
func Default() *Config {
	return &Config{
		MaxDepth:     eval.DefaultMaxDepth,
		MaxCallDepth: realm.DefaultMaxCallDepth,
	}
}

// Load reads a configuration file. Relative history paths are resolved
// against the directory of the file, and a leading ~/ against the home
// directory.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.History != "" {
		cfg.History, err = expandPath(cfg.History, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	logger.Printf("loaded %s: %+v", path, *cfg)
	return cfg, nil
}

// Decode decodes a configuration from r, starting from the defaults. An
// empty input yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidationError lists the problems of an invalid configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Issues, "; ")
}

// Validate checks the ranges of the numeric fields.
func (cfg *Config) Validate() error {
	var errs ValidationError
	if cfg.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max-depth must not be negative")
	}
	if cfg.Budget.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, "budget.max-steps must not be negative")
	}
	if cfg.Budget.Timeout < 0 {
		errs.Issues = append(errs.Issues, "budget.timeout must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultPath returns the path of the configuration file to load when none is
// given on the command line: $ESVAL_CONFIG if set, otherwise config.yaml in
// the esval directory under the user configuration directory. The second
// return value is false if that file does not exist.
func DefaultPath() (string, bool) {
	if p := os.Getenv(env.ESVAL_CONFIG); p != "" {
		return p, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	p := filepath.Join(dir, "esval", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return p, false
	}
	return p, true
}

// DefaultHistoryPath returns the path of the history database used when
// history is turned on without a path.
func DefaultHistoryPath() (string, error) {
	if dir := os.Getenv(env.XDG_STATE_HOME); dir != "" {
		return filepath.Join(dir, "esval", "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "esval", "history.db"), nil
}

func expandPath(p, base string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(base, p), nil
}
