package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/logger"
)

// Recovery returns a Gin middleware that recovers from panics, logs the stack
// and hands the panic to Exceptions as an error. A panic value that is an
// error is kept as is, so a panicking *errors.AppError is still classified.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", v)
				}
				log.Error("Panic recovered", map[string]interface{}{
					logger.FieldError:     err.Error(),
					"stack":               string(debug.Stack()),
					logger.FieldPath:      c.Request.URL.Path,
					logger.FieldMethod:    c.Request.Method,
					logger.FieldClientIP:  c.ClientIP(),
					logger.FieldRequestID: requestID(c),
				})
				_ = c.Error(err)
				c.Abort()
			}
		}()
		c.Next()
	}
}
