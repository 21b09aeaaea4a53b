package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/render"
)

// Gin context keys set by this package.
const (
	KeyRequestID    = "request_id"
	KeyUserID       = "user_id"
	KeyClaims       = "claims"
	keySkipEnvelope = "errkit.skip_envelope"
	keyRenderers    = "errkit.renderers"
)

var defaultRenderers = render.NewRegistry()

// SkipEnvelope marks a route as rendering bare payloads and error records.
//
//	r.GET("/raw", middleware.SkipEnvelope(), handler)
func SkipEnvelope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(keySkipEnvelope, true)
		c.Next()
	}
}

// EnvelopeSkipped reports whether SkipEnvelope ran for this request.
func EnvelopeSkipped(c *gin.Context) bool {
	return c.GetBool(keySkipEnvelope)
}

// Renderers returns the registry installed by Exceptions, or a JSON/YAML
// registry when none was installed.
func Renderers(c *gin.Context) *render.Registry {
	if v, ok := c.Get(keyRenderers); ok {
		if reg, ok := v.(*render.Registry); ok {
			return reg
		}
	}
	return defaultRenderers
}

// Write renders body with the renderer negotiated from the Accept header.
func Write(c *gin.Context, status int, body any) {
	rd := Renderers(c).Negotiate(c.GetHeader("Accept"))
	data, err := rd.Render(body)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(500)
		return
	}
	c.Data(status, rd.MediaType()+"; charset=utf-8", data)
}

func requestID(c *gin.Context) string {
	if id := c.GetString(KeyRequestID); id != "" {
		return id
	}
	return c.GetHeader("X-Request-Id")
}
