package errors

import (
	"errors"
	"fmt"
)

// Stable codes reported by GetErrorCode.
const (
	CodeValidation       = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeTimeout          = "TIMEOUT"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeUnknown          = "UNKNOWN_ERROR"
)

// newError builds an AppError whose context holds the given key/value pairs.
func newError(errorType ErrorType, code, message string, cause error, kv ...interface{}) *AppError {
	ctx := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		ctx[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return &AppError{Type: errorType, Message: message, Code: code, Cause: cause, Context: ctx}
}

// NewValidationError reports input rejected before any store mutation.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, CodeValidation, message, cause)
}

// NewNotFoundError reports a reference to a record absent from the store.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, CodeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewStoreError wraps a persistence fault.
func NewStoreError(operation string, cause error) *AppError {
	return newError(ErrorTypeStoreUnavailable, CodeStoreUnavailable,
		"store operation failed: "+operation, cause,
		"operation", operation)
}

func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, CodeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, CodeTimeout,
		"operation timed out: "+operation, nil,
		"operation", operation, "timeout", timeout)
}

// NewPermissionError reports an operation the platform refused, such as
// posting a notification without permission.
func NewPermissionError(operation string, resource string) *AppError {
	return newError(ErrorTypePermissionDenied, CodePermissionDenied,
		fmt.Sprintf("permission denied for %s on %s", operation, resource), nil,
		"operation", operation, "resource", resource)
}

// WrapError attaches a type and message to err. The code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, errorType.String(), message, err)
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

func IsPermissionDenied(err error) bool {
	return IsErrorType(err, ErrorTypePermissionDenied)
}

// Messages shown instead of the internal detail for system faults.
var genericMessages = map[ErrorType]string{
	ErrorTypeStoreUnavailable: "The task store is unavailable. Please try again.",
	ErrorTypeTimeout:          "The operation timed out. Please try again.",
}

// GetUserMessage returns the text shown to a user for err.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.userFacing() {
		return appErr.Message
	}
	if msg, ok := genericMessages[appErr.Type]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError reports whether err is a system fault rather than a user mistake.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	}
	return true
}
