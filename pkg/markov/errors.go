package markov

import (
	"errors"
	"fmt"
)

// ValidationError is the single error kind reported by this package. It
// covers malformed constructor arguments, malformed or insufficient
// training text, invalid generation options, missing-training-data
// preconditions, and unexpected faults coerced during generation.
type ValidationError struct {
	msg   string
	cause error
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// coerceValidationError re-signals an arbitrary error as a ValidationError
// while preserving its message. Errors that already are (or wrap) a
// ValidationError pass through unchanged.
func coerceValidationError(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return &ValidationError{msg: err.Error(), cause: err}
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Unwrap() error { return e.cause }

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
