package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalid is the raw code attached to generic validation failures.
	// Records never expose it; it is rewritten to ErrCodeInvalidInput.
	ErrCodeInvalid ErrorCode = "invalid"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "invalid_input"
	// ErrCodeRequired indicates a required field is missing.
	ErrCodeRequired ErrorCode = "required"
	// ErrCodeUnique indicates a value collides with an existing one.
	ErrCodeUnique ErrorCode = "unique"
	// ErrCodeDoesNotExist indicates a referenced object does not exist.
	ErrCodeDoesNotExist ErrorCode = "does_not_exist"
	// ErrCodeInvalidQueryParameter indicates a query parameter failed validation.
	ErrCodeInvalidQueryParameter ErrorCode = "invalid_query_parameter"
	ErrCodeInvalidEmail          ErrorCode = "invalid_email"
	ErrCodeInvalidPhoneNumber    ErrorCode = "invalid_phone_number"
	ErrCodeInvalidNationalCode   ErrorCode = "invalid_national_code"
)

// Request errors
const (
	ErrCodeParseError           ErrorCode = "parse_error"
	ErrCodeNotFound             ErrorCode = "not_found"
	ErrCodeMethodNotAllowed     ErrorCode = "method_not_allowed"
	ErrCodeNotAcceptable        ErrorCode = "not_acceptable"
	ErrCodeUnsupportedMediaType ErrorCode = "unsupported_media_type"
	ErrCodeProtected            ErrorCode = "protected_error"
)

// Authentication/Authorization errors
const (
	// ErrCodeNotAuthenticated indicates no credentials were provided.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeAuthenticationFailed indicates the credentials were rejected.
	ErrCodeAuthenticationFailed ErrorCode = "authentication_failed"
	// ErrCodeTokenExpired indicates the authentication token has expired.
	ErrCodeTokenExpired ErrorCode = "token_expired"
	// ErrCodePermissionDenied indicates the caller lacks permission.
	ErrCodePermissionDenied ErrorCode = "permission_denied"
)

// Throttling and server errors
const (
	ErrCodeThrottled ErrorCode = "throttled"
	// ErrCodeGeneric is used when nothing more specific is known.
	ErrCodeGeneric ErrorCode = "error"
	// ErrCodeMultiple groups several field errors into one record.
	ErrCodeMultiple ErrorCode = "multiple"
)

// ErrorType is the coarse category reported alongside a code.
type ErrorType string

const (
	TypeAuthentication ErrorType = "authentication_error"
	TypeInvalidRequest ErrorType = "invalid_request"
	TypeServer         ErrorType = "server_error"
	TypeThrottled      ErrorType = "throttled_error"
	TypeValidation     ErrorType = "validation_error"
	TypeMultiple       ErrorType = "multiple"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeThrottled: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// TypeForCode returns the default error type for a canonical code.
func TypeForCode(code ErrorCode) ErrorType {
	switch code {
	case ErrCodeNotAuthenticated, ErrCodeAuthenticationFailed, ErrCodeTokenExpired, ErrCodePermissionDenied:
		return TypeAuthentication
	case ErrCodeParseError, ErrCodeNotFound, ErrCodeMethodNotAllowed, ErrCodeNotAcceptable,
		ErrCodeUnsupportedMediaType, ErrCodeProtected:
		return TypeInvalidRequest
	case ErrCodeThrottled:
		return TypeThrottled
	case ErrCodeInvalid, ErrCodeInvalidInput, ErrCodeRequired, ErrCodeUnique, ErrCodeDoesNotExist,
		ErrCodeInvalidQueryParameter, ErrCodeInvalidEmail, ErrCodeInvalidPhoneNumber, ErrCodeInvalidNationalCode:
		return TypeValidation
	case ErrCodeMultiple:
		return TypeMultiple
	default:
		return TypeServer
	}
}
