// Package config loads named oracle-command presets from a YAML file, so a
// user can write `goreduce --preset ice -- FILE` instead of repeating a long
// compiler invocation on every run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when --config is not given.
const DefaultPath = ".goreduce.yaml"

// Preset names a reusable oracle command.
type Preset struct {
	Argv []string `yaml:"argv"`
}

// Config is the top-level shape of the preset file: a map from preset name
// to its oracle command.
type Config struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Load reads and parses the preset file at path. A missing file at the
// default path is not an error — it just means no presets are available;
// a missing file at an explicitly requested path is.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &c, nil
}

// Argv looks up a preset by name.
func (c *Config) Argv(name string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.Presets[name]
	if !ok {
		return nil, false
	}
	return p.Argv, true
}
