// Package validation produces coded field errors for the exception handler.
//
// It supports struct tag validation (using the validator library, with the
// extra `phone` and `national_code` tags), programmatic validation with error
// collection, and query string checks.
//
// # Struct Tag Validation
//
//	type SignupRequest struct {
//	    Phone string `json:"phone" validate:"required,phone"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required(req.Name, "name").MaxLength(req.Name, 64, "name")
//	if appErr := v.Validate(); appErr != nil { ... }
//
// # Query Parameters
//
//	err := validation.QueryParams(r.URL.Query(), validation.DefaultQueryOptions(), "page")
package validation
