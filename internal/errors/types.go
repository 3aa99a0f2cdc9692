package errors

import "fmt"

// ErrorType is the category of a failure as seen by callers of the task engine.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeStoreUnavailable
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypePermissionDenied
)

var errorTypeNames = [...]string{
	ErrorTypeValidation:       "validation",
	ErrorTypeNotFound:         "not_found",
	ErrorTypeStoreUnavailable: "store_unavailable",
	ErrorTypeInvalidInput:     "invalid_input",
	ErrorTypeTimeout:          "timeout",
	ErrorTypePermissionDenied: "permission_denied",
}

func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(errorTypeNames) {
		return "unknown"
	}
	return errorTypeNames[et]
}

// AppError is the structured error returned across package boundaries.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// userFacing reports whether Message can be shown to a user as is.
func (e *AppError) userFacing() bool {
	switch e.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypePermissionDenied:
		return true
	}
	return false
}

// WithContext attaches a key/value pair and returns the same error for chaining.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}
