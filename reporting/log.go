package reporting

import (
	"context"

	"github.com/kbukum/errkit/logger"
)

// LogReporter writes each report to a structured logger. Server errors are
// logged at error level, everything else at warn.
type LogReporter struct {
	log *logger.Logger
}

// NewLogReporter creates a LogReporter.
func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{log: log.WithComponent("reporting")}
}

// Report logs err with the request info.
func (r *LogReporter) Report(ctx context.Context, err error, info Info) {
	fields := map[string]interface{}{
		logger.FieldError:     err.Error(),
		logger.FieldErrorType: info.Type,
		logger.FieldErrorCode: info.Code,
		logger.FieldStatus:    info.Status,
		logger.FieldMethod:    info.Method,
		logger.FieldPath:      info.Path,
	}
	if info.RequestID != "" {
		fields[logger.FieldRequestID] = info.RequestID
	}

	log := r.log.WithContext(ctx)
	if info.Status >= 500 || info.Status == 0 {
		log.Error("Exception reported", fields)
		return
	}
	log.Warn("Exception reported", fields)
}
