package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errkit/render"
	"github.com/kbukum/errkit/server/middleware"
)

// Respond renders data with the given status. 2xx and 4xx bodies are wrapped
// in the response envelope unless the route skips it.
func Respond(c *gin.Context, status int, data any) {
	body := data
	if !middleware.EnvelopeSkipped(c) {
		body = render.Wrap(status, data)
	}
	middleware.Write(c, status, body)
}

// RespondWithError attaches err to the context and aborts; the Exceptions
// middleware renders it.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	Respond(c, http.StatusOK, data)
}

// RespondCreated sends a 201 response wrapping data.
func RespondCreated(c *gin.Context, data any) {
	Respond(c, http.StatusCreated, data)
}

// RespondAccepted sends a 202 response wrapping data.
func RespondAccepted(c *gin.Context, data any) {
	Respond(c, http.StatusAccepted, data)
}

// RespondNoContent sends a 204 with no body.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
