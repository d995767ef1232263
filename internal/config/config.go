// Package config loads Pecco's optional project configuration file
// (SPEC_FULL.md 1.2), a small goccy/go-yaml document sitting alongside
// the teacher's own direct third-party-library choices rather than the
// standard library's encoding/json or a hand-rolled parser.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the schema of pecco.yaml.
type Config struct {
	Target      string `yaml:"target"`
	Optimize    bool   `yaml:"optimize"`
	Prelude     string `yaml:"prelude"`
	HidePrelude bool   `yaml:"hidePrelude"`
}

// Default returns the configuration used when no pecco.yaml is present.
func Default() Config {
	return Config{Target: "generic", Optimize: false, HidePrelude: false}
}

// Load reads and parses path. Keys the file omits keep their Default()
// values; a missing or unreadable file is returned as an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
