package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds optional scanner settings loaded from a YAML file.
type Config struct {
	// SkipDirs adds directory names to the scanner's built-in skip list.
	SkipDirs []string `yaml:"skipDirs"`

	// ProjectID labels saved detection batches.
	ProjectID string `yaml:"projectId"`

	// Store is the file path detection batches are appended to when the
	// scan command is invoked with --save.
	Store string `yaml:"store"`
}

// loadConfig reads the YAML config at path. An empty path returns the zero
// config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
