// Package logger provides structured logging for errkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("orders").WithComponent("exception")
//	log.Warn("request failed", logger.Fields("code", "not_found"))
package logger
