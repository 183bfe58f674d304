package equity

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed hands or board. Raised before any
// simulation work.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// EvaluationError wraps a failure of the Evaluator on an otherwise valid board.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string { return "evaluation failed: " + e.Err.Error() }

func (e *EvaluationError) Unwrap() error { return e.Err }

// ConfigurationError reports unusable simulation parameters such as num_sims <= 0.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
