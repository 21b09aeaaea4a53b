// Package config loads service configuration with Viper.
//
// Values come from a config.yml found in the standard locations, a .env file
// and environment variables, in increasing order of precedence. Defaults that
// are not zero values are seeded with WithDefaults:
//
//	var cfg config.ServiceConfig
//	err := config.LoadConfig("errkit-demo", &cfg, config.WithDefaults(config.ServiceDefaults()))
//
// Environment variables map onto nested keys by splitting on underscores, so
// EXCEPTIONS_FARSI_EXCEPTION=false sets exceptions.farsi_exception.
package config
