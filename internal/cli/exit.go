package cli

import (
	"errors"
	"fmt"
)

const (
	ExitCodeSuccess          = 0
	ExitCodeGenerationFailed = 2
	ExitCodeStale            = 3
)

// ExitError carries a process exit code while preserving wrapped error context.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the wrapped error message or a fallback message with exit code.
func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("process failed with exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped root error.
func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// newExitError builds an ExitError returned from CLI execution paths.
func newExitError(code int, err error) error {
	return &ExitError{
		Code: code,
		Err:  err,
	}
}
