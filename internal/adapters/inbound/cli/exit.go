package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitFailed = 1 // the component did not pass
	ExitInfra  = 2 // the check could not run
)

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func failed(format string, args ...any) error {
	return &ExitError{Code: ExitFailed, Err: fmt.Errorf(format, args...)}
}

func infra(err error) error {
	return &ExitError{Code: ExitInfra, Err: err}
}

// ExitCode maps a command error to the process exit code. Errors without
// an explicit code are usage or input errors and exit with 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitInfra
}
