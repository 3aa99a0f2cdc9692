package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies a rejected field.
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
)

// FieldError is one rejected field of a draft or setting.
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", fe.Field, fe.Message)
}

// ValidationError collects every field problem found in one pass so the
// caller can report them together.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}
	if len(ve.Errors) == 0 {
		return "validation error"
	}
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(parts), strings.Join(parts, "; "))
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (ve *ValidationError) HasErrors() bool { return len(ve.Errors) != 0 }

// OrNil lets validators return a nil error interface when nothing was added.
func (ve *ValidationError) OrNil() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, field+" is required", nil)
}

func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, max int) {
	ve.AddError(field, ErrorTypeInvalidLength,
		fmt.Sprintf("%s must be at most %d characters long", field, max), value)
}

func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, field+" "+reason, value)
}

func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidRange, field+" "+reason, value)
}

// Merge folds in the field errors of another ValidationError. Other errors are ignored.
func (ve *ValidationError) Merge(err error) {
	var other *ValidationError
	if !errors.As(err, &other) {
		return
	}
	ve.Errors = append(ve.Errors, other.Errors...)
}

func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field != field {
			continue
		}
		out = append(out, fe)
	}
	return out
}

// GetUserFriendlyMessage renders the errors for display, one per line when
// there are several.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
