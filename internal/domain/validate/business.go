// Package validate implements the business-record validator. The same rule
// set is the single source of truth for every submission path: handlers must
// re-validate even when a client already did, since client-side checks are a
// UX optimization and never a security boundary.
package validate

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "joylist/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// usPhonePattern matches US numbers like "(555) 555-1234", "555-555-1234"
// or "5555551234".
var usPhonePattern = regexp.MustCompile(`^\(?(\d{3})\)?[- ]?(\d{3})[- ]?(\d{4})$`)

// BusinessInput is the untrusted submission shape for create and update.
type BusinessInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Type  string `json:"type" validate:"omitempty,max=100"`
	URL   string `json:"url" validate:"required,url"`
	Phone string `json:"phone" validate:"omitempty,us_phone"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the json field names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// The registration only fails for a blank tag or nil fn.
	_ = v.RegisterValidation("us_phone", func(fl validator.FieldLevel) bool {
		return usPhonePattern.MatchString(fl.Field().String())
	})

	return v
}

// Business validates and normalizes an untrusted submission. It returns
// either a fully normalized record or the complete set of per-field
// messages; there is no partial-success mode. Malformed input shape is
// reported per field, never as a panic or opaque failure.
func Business(input *BusinessInput) (*BusinessInput, *domainerrors.ValidationError) {
	normalized := &BusinessInput{
		Name:  strings.TrimSpace(input.Name),
		Type:  strings.TrimSpace(input.Type),
		URL:   strings.TrimSpace(input.URL),
		Phone: strings.TrimSpace(input.Phone),
	}

	err := validate.Struct(normalized)
	if err == nil {
		return normalized, nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns InvalidValidationError for a non-struct
		// argument, which cannot happen here.
		return nil, domainerrors.NewValidationError(map[string]string{
			"input": "Invalid submission.",
		})
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = messageFor(fieldErr)
	}

	return nil, domainerrors.NewValidationError(fields)
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "name":
		if fieldErr.Tag() == "max" {
			return "Name cannot exceed 100 characters."
		}

		return "Please provide a name."
	case "type":
		return "Type cannot exceed 100 characters."
	case "url":
		return "Please provide a valid website address."
	case "phone":
		return "Please provide a valid phone number."
	default:
		return "Invalid value."
	}
}
