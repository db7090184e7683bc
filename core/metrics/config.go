package metrics

import (
	"fmt"

	"github.com/kilianp07/trafficwatch/core/factory"
)

// Config defines settings for metrics sinks and the metrics HTTP server.
type Config struct {
	Sinks  []factory.ModuleConfig `json:"sinks"`
	Server ServerConfig           `json:"server"`
}

// ServerConfig controls the HTTP endpoint exposing /metrics and /baseline.
type ServerConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":9108"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}
