// Package config loads the service runtime configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Runtime struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`

	// Locale is an optional path to a phrase-table override file; empty means
	// the built-in English wording.
	Locale string `yaml:"locale"`

	History History `yaml:"history"`
}

type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func Default() Runtime {
	return Runtime{
		Addr:    ":8080",
		DataDir: "./data",
		History: History{Enabled: true, Path: "./data/runs.db"},
	}
}

// Load reads runtime.yaml, filling unset fields from Default. A missing file
// is not an error; the defaults stand.
func Load(path string) (Runtime, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("runtime.yaml: %w", err)
	}
	if t.Addr == "" {
		t.Addr = ":8080"
	}
	if t.DataDir == "" {
		t.DataDir = "./data"
	}
	if t.History.Enabled && t.History.Path == "" {
		t.History.Path = "./data/runs.db"
	}
	return t, nil
}
