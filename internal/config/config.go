// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads golp defaults from the user's config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-configurable defaults. Flags override these.
type Config struct {
	FieldSeparator  string `yaml:"field_separator"`
	RecordSeparator string `yaml:"record_separator"`
	InputFormat     string `yaml:"input_format"`
	OutputFormat    string `yaml:"output_format"`
	History         *bool  `yaml:"history"`
	HistoryPath     string `yaml:"history_path"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		RecordSeparator: "\n",
		InputFormat:     "awk",
		OutputFormat:    "auto",
	}
}

// DefaultPath returns the config file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "golp", "config.yaml"), nil
}

// DefaultHistoryPath returns the history database location.
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "golp", "history.db"), nil
}

// Load reads the config at path, layered over the built-in defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if file.FieldSeparator != "" {
		cfg.FieldSeparator = file.FieldSeparator
	}
	if file.RecordSeparator != "" {
		cfg.RecordSeparator = file.RecordSeparator
	}
	if file.InputFormat != "" {
		cfg.InputFormat = file.InputFormat
	}
	if file.OutputFormat != "" {
		cfg.OutputFormat = file.OutputFormat
	}
	cfg.History = file.History
	if file.HistoryPath != "" {
		cfg.HistoryPath = file.HistoryPath
	}
	return cfg, nil
}

// HistoryEnabled reports whether run recording is on. It defaults to on
// when the config file does not say.
func (c Config) HistoryEnabled() bool {
	if c.History == nil {
		return true
	}
	return *c.History
}
