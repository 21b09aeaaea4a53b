package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/errkit/exception"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/server"
)

// ServiceConfig contains the configuration of a service using the exception
// handler. Projects extend this by embedding it in their own config structs.
//
// Example:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Database DatabaseConfig `yaml:"database" mapstructure:"database"`
//	}
type ServiceConfig struct {
	Name        string             `yaml:"name" mapstructure:"name"`
	Environment string             `yaml:"environment" mapstructure:"environment"`
	Version     string             `yaml:"version" mapstructure:"version"`
	Debug       bool               `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config      `yaml:"logging" mapstructure:"logging"`
	Server      server.Config      `yaml:"server" mapstructure:"server"`
	Exceptions  exception.Settings `yaml:"exceptions" mapstructure:"exceptions"`
}

// ServiceDefaults returns the defaults LoadConfig needs for a ServiceConfig,
// for use with WithDefaults. Boolean settings that default to true can only
// be expressed this way.
func ServiceDefaults() map[string]any {
	return exception.Defaults("exceptions")
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted
// so the embedding struct automatically satisfies the Config interface.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug {
		c.Server.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Exceptions.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Override this in embedding structs and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Exceptions.Validate(); err != nil {
		return fmt.Errorf("config.exceptions: %w", err)
	}
	return nil
}
