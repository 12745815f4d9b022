// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xcoder-tools/dlcheck/internal/constants"
)

// Loader resolves and reads the checker configuration.
type Loader struct {
	workDir string
}

// NewLoader creates a loader rooted at the current working directory.
func NewLoader() (*Loader, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return &Loader{workDir: wd}, nil
}

// NewLoaderAt creates a loader rooted at dir.
func NewLoaderAt(dir string) *Loader {
	return &Loader{workDir: dir}
}

// Path returns the config file to read. The file is resolved in this order:
//  1. explicit (the --config flag).
//  2. DLCHECK_CONFIG environment variable.
//  3. .dlcheck.yaml in the working directory, if it exists.
//
// An empty result means built-in defaults are used.
func (l *Loader) Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(constants.ConfigEnv); p != "" {
		return p
	}
	p := filepath.Join(l.workDir, constants.ConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Load reads the configuration, layering file values over defaults and
// environment variables over both, then validates the result.
func (l *Loader) Load(explicit string) (*Config, error) {
	cfg := Default()

	if path := l.Path(explicit); path != "" {
		//nolint:gosec // G304: config path is supplied by the user.
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals YAML over cfg, rejecting unknown keys. An empty document
// leaves cfg untouched.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
