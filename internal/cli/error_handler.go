package cli

import (
	stderrors "errors"
	"fmt"

	"todo-engine/internal/errors"
	"todo-engine/internal/validation"
)

// ErrorHandler turns engine errors into the text printed to the user.
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message with the operation that failed.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple rewrites engine errors to their user message and passes any
// other error through untouched.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil || !(validation.IsValidationError(err) || errors.IsAppError(err)) {
		return err
	}
	return stderrors.New(eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	// field detail beats the summary of the wrapping AppError
	var fields *validation.ValidationError
	switch {
	case stderrors.As(err, &fields):
		return fields.GetUserFriendlyMessage()
	case errors.IsAppError(err):
		return errors.GetUserMessage(err)
	default:
		return err.Error()
	}
}
