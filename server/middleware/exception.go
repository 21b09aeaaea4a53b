package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/exception"
	"github.com/kbukum/errkit/logger"
	"github.com/kbukum/errkit/render"
)

// Exceptions returns a Gin middleware that turns the last error attached to
// the context into a rendered error response. Handlers report failures with
// c.Error(err) and return without writing.
//
// Unrecognized errors are reported and become a generic 500 unless the
// handler is in debug pass-through mode, in which case only the status is set
// and the raw error is left on the context for gin's debug output.
func Exceptions(h *exception.Handler, renderers *render.Registry, log *logger.Logger) gin.HandlerFunc {
	if renderers == nil {
		renderers = defaultRenderers
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("exceptions")

	return func(c *gin.Context) {
		c.Set(keyRenderers, renderers)

		if !renderers.Acceptable(c.GetHeader("Accept")) {
			_ = c.Error(errors.NotAcceptable())
			c.Abort()
		} else {
			c.Next()
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		rc := exception.RequestContextFrom(c.Request)
		rc.RequestID = requestID(c)
		ctx := c.Request.Context()

		fields := map[string]interface{}{
			logger.FieldMethod:    rc.Method,
			logger.FieldPath:      rc.Path,
			logger.FieldRequestID: rc.RequestID,
		}

		rec, unhandled := h.Handle(ctx, err, rc)
		if unhandled != nil {
			log.Error("Unhandled error", logger.MergeWithError(fields, unhandled))
			if h.PassThrough() {
				if !c.Writer.Written() {
					c.AbortWithStatus(http.StatusInternalServerError)
				}
				return
			}
			h.Report(ctx, unhandled, rc)
			rec = h.GenericRecord()
		} else {
			fields[logger.FieldStatus] = rec.Status()
			fields[logger.FieldErrorType] = string(rec.Type)
			fields[logger.FieldErrorCode] = string(rec.Code)
			if rec.Attr != nil {
				fields[logger.FieldAttr] = *rec.Attr
			}
			if rec.Status() >= http.StatusInternalServerError {
				log.Error("Request failed", logger.MergeWithError(fields, err))
			} else {
				log.Warn("Request failed", fields)
			}
		}

		if c.Writer.Written() {
			return
		}
		if wait, ok := throttleWait(err); ok {
			c.Header("Retry-After", wait)
		}

		var body any = render.Failure(rec.Status(), rec)
		if EnvelopeSkipped(c) {
			body = rec
		}
		Write(c, rec.Status(), body)
		c.Abort()
	}
}

func throttleWait(err error) (string, bool) {
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeThrottled {
		return "", false
	}
	wait, ok := appErr.Details["wait"].(int)
	if !ok {
		return "", false
	}
	return strconv.Itoa(wait), true
}
