package errors

import (
	"fmt"
	"math"
	"net/http"
	"time"
)

// DefaultDetail is the message used when an error carries no text of its own.
const DefaultDetail = "A server error occurred."

// AppError is the unified application error type.
type AppError struct {
	// Type is the coarse category of the error.
	Type ErrorType `json:"type"`
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message in the default language.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Fields holds per-field failures in the order they were found.
	Fields []FieldError `json:"fields,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// FieldError is a single failure attached to a (possibly nested) field.
type FieldError struct {
	// Path is the field location, outermost segment first.
	Path    []string  `json:"path"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Field builds a FieldError. Nested paths are passed as extra segments:
//
//	errors.Field(errors.ErrCodeRequired, "This field is required.", "form", "password")
func Field(code ErrorCode, message string, path ...string) FieldError {
	return FieldError{Path: path, Code: code, Message: message}
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithFields appends field errors and returns the receiver.
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	e.Fields = append(e.Fields, fields...)
	return e
}

// New creates a new AppError, deriving type and retryability from the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Type:       TypeForCode(code),
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Validation ---

// Validation creates a validation error with a single non-field message.
func Validation(message string) *AppError {
	if message == "" {
		message = "Invalid input."
	}
	return &AppError{
		Type: TypeValidation, Code: ErrCodeInvalid, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationFields creates a validation error from field errors. The message
// of the first field error becomes the error message.
func ValidationFields(fields ...FieldError) *AppError {
	err := Validation("")
	err.Fields = fields
	if len(fields) > 0 {
		err.Message = fields[0].Message
		err.Code = fields[0].Code
	}
	return err
}

// Required creates a validation error for a missing field.
func Required(path ...string) *AppError {
	return ValidationFields(Field(ErrCodeRequired, "This field is required.", path...))
}

// Unique creates a validation error for a value that must be unique.
func Unique(path ...string) *AppError {
	return ValidationFields(Field(ErrCodeUnique, "This field must be unique.", path...))
}

// DoesNotExist creates a validation error for a reference to a missing object.
func DoesNotExist(path ...string) *AppError {
	return ValidationFields(Field(ErrCodeDoesNotExist, "Object does not exist.", path...))
}

// --- Request ---

// ParseError creates an error for a malformed request body.
func ParseError(cause error) *AppError {
	return &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeParseError, Message: "Malformed request.",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// NotFound creates an error for a resource that was not found.
func NotFound(resource string) *AppError {
	err := &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeNotFound, Message: "Not found.",
		HTTPStatus: http.StatusNotFound,
	}
	if resource != "" {
		err.Details = map[string]any{"resource": resource}
	}
	return err
}

// MethodNotAllowed creates an error for an unsupported HTTP method.
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeMethodNotAllowed,
		Message:    fmt.Sprintf("Method %q not allowed.", method),
		HTTPStatus: http.StatusMethodNotAllowed,
		Details:    map[string]any{"method": method},
	}
}

// NotAcceptable creates an error for an unsatisfiable Accept header.
func NotAcceptable() *AppError {
	return &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeNotAcceptable,
		Message:    "Could not satisfy the request Accept header.",
		HTTPStatus: http.StatusNotAcceptable,
	}
}

// UnsupportedMediaType creates an error for a request body in an unknown format.
func UnsupportedMediaType(mediaType string) *AppError {
	return &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeUnsupportedMediaType,
		Message:    fmt.Sprintf("Unsupported media type %q in request.", mediaType),
		HTTPStatus: http.StatusUnsupportedMediaType,
		Details:    map[string]any{"media_type": mediaType},
	}
}

// Protected creates an error for an operation blocked by a related object.
func Protected(cause error) *AppError {
	return &AppError{
		Type: TypeInvalidRequest, Code: ErrCodeProtected,
		Message:    "Requested operation cannot be completed because a related object is protected.",
		HTTPStatus: http.StatusConflict, Cause: cause,
	}
}

// --- Authentication/Authorization ---

// NotAuthenticated creates an error for a request without credentials.
func NotAuthenticated() *AppError {
	return &AppError{
		Type: TypeAuthentication, Code: ErrCodeNotAuthenticated,
		Message:    "Authentication credentials were not provided.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthenticationFailed creates an error for rejected credentials.
func AuthenticationFailed(reason string) *AppError {
	if reason == "" {
		reason = "Incorrect authentication credentials."
	}
	return &AppError{
		Type: TypeAuthentication, Code: ErrCodeAuthenticationFailed, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates an error for an expired authentication token.
func TokenExpired() *AppError {
	return &AppError{
		Type: TypeAuthentication, Code: ErrCodeTokenExpired,
		Message:    "Token has expired.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// PermissionDenied creates an error for forbidden access.
func PermissionDenied(reason string) *AppError {
	if reason == "" {
		reason = "You do not have permission to perform this action."
	}
	return &AppError{
		Type: TypeAuthentication, Code: ErrCodePermissionDenied, Message: reason,
		HTTPStatus: http.StatusForbidden,
	}
}

// --- Throttling/Server ---

// Throttled creates an error for a rate-limited request. A positive wait is
// rounded up to whole seconds and included in the message.
func Throttled(wait time.Duration) *AppError {
	err := &AppError{
		Type: TypeThrottled, Code: ErrCodeThrottled, Message: "Request was throttled.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
	if wait > 0 {
		secs := int(math.Ceil(wait.Seconds()))
		unit := "seconds"
		if secs == 1 {
			unit = "second"
		}
		err.Message = fmt.Sprintf("Request was throttled. Expected available in %d %s.", secs, unit)
		err.Details = map[string]any{"wait": secs}
	}
	return err
}

// Internal creates an error for an unexpected server failure.
func Internal(cause error) *AppError {
	return &AppError{
		Type: TypeServer, Code: ErrCodeGeneric, Message: DefaultDetail,
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
