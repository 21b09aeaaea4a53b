package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/errkit/errors"
)

// Validator collects field errors. Fields are addressed by path segments,
// e.g. v.Required("x", "address", "city").
type Validator struct {
	errors []errors.FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]errors.FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(code errors.ErrorCode, message string, path ...string) {
	v.errors = append(v.errors, errors.Field(code, message, path...))
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors in the order they were added.
func (v *Validator) Errors() []errors.FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
// The first error added becomes the error's code and message.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return errors.ValidationFields(v.errors...)
}

// Required checks if a string is non-empty.
func (v *Validator) Required(value string, path ...string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(errors.ErrCodeRequired, "This field is required.", path...)
	}
	return v
}

// RequiredUUID checks if a string is a valid non-nil UUID.
func (v *Validator) RequiredUUID(value string, path ...string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(errors.ErrCodeRequired, "This field is required.", path...)
		return v
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		v.AddError(errors.ErrCodeInvalid, "Must be a valid UUID.", path...)
		return v
	}

	if parsed == uuid.Nil {
		v.AddError(errors.ErrCodeInvalid, "Must not be the nil UUID.", path...)
	}

	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(value string, path ...string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(errors.ErrCodeInvalid, "Must be a valid UUID.", path...)
	}
	return v
}

// MaxLength checks if a string is within max length.
func (v *Validator) MaxLength(value string, maxLen int, path ...string) *Validator {
	if len([]rune(value)) > maxLen {
		v.AddError("max_length", fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen), path...)
	}
	return v
}

// MinLength checks if a string meets minimum length.
func (v *Validator) MinLength(value string, minLen int, path ...string) *Validator {
	if len([]rune(value)) < minLen {
		v.AddError("min_length", fmt.Sprintf("Ensure this field has at least %d characters.", minLen), path...)
	}
	return v
}

// Range checks if a number is within a range.
func (v *Validator) Range(value, minVal, maxVal int, path ...string) *Validator {
	if value < minVal {
		v.AddError("min_value", fmt.Sprintf("Ensure this value is greater than or equal to %d.", minVal), path...)
	} else if value > maxVal {
		v.AddError("max_value", fmt.Sprintf("Ensure this value is less than or equal to %d.", maxVal), path...)
	}
	return v
}

// Pattern checks if a non-empty string matches a regex pattern.
func (v *Validator) Pattern(value, pattern string, path ...string) *Validator {
	if value == "" {
		return v
	}
	matched, err := regexp.MatchString(pattern, value)
	if err != nil || !matched {
		v.AddError(errors.ErrCodeInvalid, "Enter a valid value.", path...)
	}
	return v
}

// OneOf checks if a non-empty value is one of the allowed values.
func (v *Validator) OneOf(value string, allowed []string, path ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError("invalid_choice", fmt.Sprintf("%q is not a valid choice.", value), path...)
	return v
}

// Phone checks a non-empty value against the phone number rule.
func (v *Validator) Phone(value string, path ...string) *Validator {
	if value != "" && !IsPhoneNumber(value) {
		v.AddError(errors.ErrCodeInvalidPhoneNumber, PhoneNumberMessage, path...)
	}
	return v
}

// NationalCode checks a non-empty value against the national code rule.
func (v *Validator) NationalCode(value string, path ...string) *Validator {
	if value != "" && !IsNationalCode(value) {
		v.AddError(errors.ErrCodeInvalidNationalCode, NationalCodeMessage, path...)
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, code errors.ErrorCode, message string, path ...string) *Validator {
	if !condition {
		v.AddError(code, message, path...)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(value string, path ...string) error {
	v := New().Required(value, path...)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ValidateUUID validates and parses a UUID string.
func ValidateUUID(value string, path ...string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.Required(path...)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.ValidationFields(errors.Field(errors.ErrCodeInvalid, "Must be a valid UUID.", path...)).WithCause(err)
	}

	return id, nil
}
