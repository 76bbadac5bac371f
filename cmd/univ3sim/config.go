package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML defaults file, following the teacher's
// DEX-Proj sync service config: a plain struct decoded with yaml.v3,
// providing default snapshot and store paths that command-line flags can
// override. The swap request itself comes from flags only.
type Config struct {
	Snapshot struct {
		Path string `yaml:"path"`
	} `yaml:"snapshot"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
}

// loadConfig reads path as YAML. A missing file is not an error: the CLI
// runs fine from flags alone, with the config file only supplying defaults.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
