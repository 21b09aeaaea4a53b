package server

import (
	"fmt"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	// Debug runs gin in debug mode.
	Debug bool `yaml:"debug" mapstructure:"debug"`
	// RequestsPerMinute enables per-client rate limiting when positive.
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	// JWTSecret enables bearer token authentication when set.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// AuthSkipPaths are path prefixes served without authentication.
	AuthSkipPaths []string `yaml:"auth_skip_paths" mapstructure:"auth_skip_paths"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.JWTSecret != "" && len(c.AuthSkipPaths) == 0 {
		c.AuthSkipPaths = []string{"/health"}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("server.requests_per_minute must be non-negative (got: %d)", c.RequestsPerMinute)
	}
	return nil
}
