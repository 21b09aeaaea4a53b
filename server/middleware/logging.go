package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/logger"
)

// RequestLogger returns a Gin middleware that logs every request with method,
// path, status code and latency. Health-check paths are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			logger.FieldMethod:    c.Request.Method,
			logger.FieldPath:      path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  latency.Milliseconds(),
			logger.FieldClientIP:  c.ClientIP(),
			logger.FieldRequestID: requestID(c),
		}

		if len(c.Errors) > 0 {
			fields[logger.FieldError] = c.Errors.Last().Error()
		}
		if status >= 500 {
			fields["size"] = c.Writer.Size()
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(log, fields, status)
	}
}

var healthPaths = []string{"/health", "/alive", "/ready", "/metrics"}

func isHealthEndpoint(path string) bool {
	path = strings.TrimPrefix(path, "/api")
	return slices.Contains(healthPaths, path)
}

// logByStatus logs request fields at the appropriate level based on HTTP status code.
// If log is nil, the global logger is used.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
