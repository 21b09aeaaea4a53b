// Package errors provides the error vocabulary shared by every errkit package.
//
// An AppError carries a canonical code, a coarse error type, an HTTP status
// and, for validation failures, an ordered list of field errors. Handlers
// return these errors; the exception package turns them into records.
//
//	return errors.Required("form", "password")
//	return errors.NotFound("order")
package errors
