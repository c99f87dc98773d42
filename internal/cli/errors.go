// Package cli defines the error taxonomy shared by all subcommands and the
// mapping from errors to process exit codes.
package cli

import (
	"errors"
	"fmt"
)

// Exit codes form the CLI's contract with scripts that wrap it.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitNoADB     = 2
	ExitSelection = 3
	ExitBadArgs   = 4
	ExitTimeout   = 5
)

// LaunchError means the adb executable could not be found or spawned.
type LaunchError struct {
	Msg string
	Err error
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *LaunchError) Unwrap() error { return e.Err }

// SelectionError means zero or multiple candidate devices without an explicit
// serial, or a requested serial that is not online.
type SelectionError struct {
	Msg string
}

func (e *SelectionError) Error() string { return e.Msg }

// ArgumentError means a required input is missing or invalid.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

// TimeoutError means an explicit one-shot operation exceeded its allotted
// time. A capture-duration expiry is intentional cancellation and must never
// be wrapped in this type.
type TimeoutError struct {
	Msg string
}

func (e *TimeoutError) Error() string { return e.Msg }

func Launchf(format string, args ...interface{}) error {
	return &LaunchError{Msg: fmt.Sprintf(format, args...)}
}

func Selectionf(format string, args ...interface{}) error {
	return &SelectionError{Msg: fmt.Sprintf(format, args...)}
}

func Argumentf(format string, args ...interface{}) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func Timeoutf(format string, args ...interface{}) error {
	return &TimeoutError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode resolves an error to its terminal exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var le *LaunchError
	if errors.As(err, &le) {
		return ExitNoADB
	}
	var se *SelectionError
	if errors.As(err, &se) {
		return ExitSelection
	}
	var ae *ArgumentError
	if errors.As(err, &ae) {
		return ExitBadArgs
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return ExitTimeout
	}
	return ExitFailure
}
