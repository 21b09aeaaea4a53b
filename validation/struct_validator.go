package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/errkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error paths
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhoneNumber(fl.Field().String())
		})
		_ = validate.RegisterValidation("national_code", func(fl validator.FieldLevel) bool {
			return IsNationalCode(fl.Field().String())
		})
	})
	return validate
}

// Validate validates a struct using struct tags such as
// `validate:"required,email,max=255"` or the custom `phone` and
// `national_code` tags.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("").WithCause(err)
	}
	return FromValidationErrors(verrs)
}

// FromValidationErrors converts validator failures into a validation AppError
// with one field error per failure, in the order the validator reported them.
func FromValidationErrors(verrs validator.ValidationErrors) *errors.AppError {
	fields := make([]errors.FieldError, 0, len(verrs))
	for _, e := range verrs {
		code, message := describe(e)
		fields = append(fields, errors.Field(code, message, namespacePath(e.Namespace())...))
	}
	return errors.ValidationFields(fields...).WithCause(verrs)
}

// describe maps a validator tag to a code and default-language message.
func describe(e validator.FieldError) (errors.ErrorCode, string) {
	switch e.Tag() {
	case "required":
		return errors.ErrCodeRequired, "This field is required."
	case "email":
		return errors.ErrCodeInvalidEmail, "Enter a valid email address."
	case "phone":
		return errors.ErrCodeInvalidPhoneNumber, PhoneNumberMessage
	case "national_code":
		return errors.ErrCodeInvalidNationalCode, NationalCodeMessage
	case "min":
		return "min_length", "Ensure this field has at least " + e.Param() + " characters."
	case "max":
		return "max_length", "Ensure this field has no more than " + e.Param() + " characters."
	case "url":
		return errors.ErrCodeInvalid, "Enter a valid URL."
	case "uuid", "uuid4":
		return errors.ErrCodeInvalid, "Must be a valid UUID."
	case "oneof":
		return "invalid_choice", "Must be one of: " + e.Param() + "."
	default:
		return errors.ErrCodeInvalid, "This field is not valid."
	}
}

// namespacePath turns "Order.items[2].sku" into ["items", "2", "sku"]. The
// root struct name is dropped.
func namespacePath(ns string) []string {
	segments := strings.Split(ns, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	path := make([]string, 0, len(segments))
	for _, seg := range segments {
		for seg != "" {
			open := strings.IndexByte(seg, '[')
			if open < 0 {
				path = append(path, seg)
				break
			}
			if open > 0 {
				path = append(path, seg[:open])
			}
			end := strings.IndexByte(seg[open:], ']')
			if end < 0 {
				path = append(path, seg[open:])
				break
			}
			path = append(path, seg[open+1:open+end])
			seg = seg[open+end+1:]
		}
	}
	return path
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
