// Package config holds the service configuration: server settings and
// the numeric thresholds the rule analyzers run with. Values come from
// an optional YAML file with environment overrides on top; everything
// has a usable default.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	Rules  Rules  `yaml:"rules" json:"rules"`
}

// Server configures the HTTP process and the base-table lifecycle.
type Server struct {
	Addr           string `yaml:"addr" json:"addr"`
	TablePath      string `yaml:"table_path" json:"table_path"`
	MaxSimulations int    `yaml:"max_simulations" json:"max_simulations"`
}

func (s *Server) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.TablePath == "" {
		s.TablePath = "data/loot_table.json"
	}
	if s.MaxSimulations == 0 {
		s.MaxSimulations = 100000
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Rules.ApplyDefaults()
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads a YAML config file and fills in defaults for anything the
// file leaves out.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadOrDefault loads the file at path, or returns the default
// configuration when the file does not exist. Other read errors still
// fail, so a broken file never silently falls back.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return c, err
}
