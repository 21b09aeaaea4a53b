package server

import (
	"mime"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/kbukum/errkit/errors"
	"github.com/kbukum/errkit/validation"
)

// BindJSON decodes the JSON request body into dst and validates it with
// struct tags. Errors are ready for RespondWithError.
func BindJSON(c *gin.Context, dst any) error {
	if ct := c.GetHeader("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return errors.UnsupportedMediaType(ct)
		}
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.ParseError(err)
	}
	return validation.Validate(dst)
}

// BindQuery checks the named query parameters.
func BindQuery(c *gin.Context, opts validation.QueryOptions, names ...string) error {
	return validation.QueryParams(c.Request.URL.Query(), opts, names...)
}
