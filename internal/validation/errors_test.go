package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "title", Message: "is required"}}, "invalid title: is required"},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "priority", Message: "is unknown"},
		}, "2 validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if !strings.Contains(result, tt.expectError) {
				t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	if ve.OrNil() != nil {
		t.Error("OrNil() should return nil for an empty ValidationError")
	}

	ve.AddRequiredError("title")
	if ve.OrNil() == nil {
		t.Error("OrNil() should return the error once a field error was added")
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	if !IsValidationError(ve) {
		t.Error("IsValidationError() should recognise a ValidationError")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Error("IsValidationError() should recognise a wrapped ValidationError")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError() should reject other errors")
	}
}

func TestValidationError_Merge(t *testing.T) {
	first := NewValidationError()
	first.AddRequiredError("title")

	second := NewValidationError()
	second.AddInvalidValueError("priority", 9, "unknown")

	first.Merge(second)
	first.Merge(nil)
	first.Merge(fmt.Errorf("not a validation error"))

	if len(first.Errors) != 2 {
		t.Fatalf("Merge() produced %d errors, expected 2", len(first.Errors))
	}
	if got := first.GetFieldErrors("priority"); len(got) != 1 || got[0].Type != ErrorTypeInvalidValue {
		t.Errorf("GetFieldErrors(priority) = %+v", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("empty message = %q", got)
	}

	ve.AddRequiredError("title")
	if got := ve.GetUserFriendlyMessage(); got != "title is required" {
		t.Errorf("single message = %q", got)
	}

	ve.AddInvalidLengthError("description", "x", 10)
	got := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(got, "Multiple validation errors occurred:") {
		t.Errorf("multi message = %q", got)
	}
	if !strings.Contains(got, "- description must be at most 10 characters long") {
		t.Errorf("multi message missing length line: %q", got)
	}
}
