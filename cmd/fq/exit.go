package main

import (
	"errors"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitConfig   = 111
	exitResource = 222
)

const usageLine = "usage: fq [-aq] [JOBID...]"

// exitError carries the process status for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}
