package validation

import (
	"net/url"

	"github.com/kbukum/errkit/errors"
)

// QueryOptions controls how QueryParams treats each parameter.
type QueryOptions struct {
	// Required rejects a parameter that is absent from the query string.
	Required bool
	// AllowNull accepts an absent parameter or the literal "null".
	AllowNull bool
	// AllowBlank accepts an empty value.
	AllowBlank bool
}

// DefaultQueryOptions requires every parameter to be present, non-null and
// non-blank.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Required: true}
}

// QueryParams checks names against values in order and fails on the first
// parameter that breaks a rule. An absent parameter counts as null, so it is
// rejected unless AllowNull is set even when Required is false.
func QueryParams(values url.Values, opts QueryOptions, names ...string) error {
	for _, name := range names {
		raw, present := values[name]
		value := ""
		if present && len(raw) > 0 {
			value = raw[0]
		}

		switch {
		case opts.Required && !present:
			return queryError(name, "Query parameter is required.")
		case !opts.AllowNull && (!present || value == "null"):
			return queryError(name, "Query parameter may not be null.")
		case !opts.AllowBlank && present && value == "":
			return queryError(name, "Query parameter may not be blank.")
		}
	}
	return nil
}

func queryError(name, reason string) *errors.AppError {
	return errors.ValidationFields(
		errors.Field(errors.ErrCodeInvalidQueryParameter, name+" "+reason, name),
	)
}
