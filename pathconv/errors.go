package pathconv

import (
	"errors"
	"fmt"
	"os/exec"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrLaunch indicates the WSL front-end could not be started.
	ErrLaunch = errors.New("launch failed")

	// ErrExit indicates wslpath ran but exited with a non-zero code.
	ErrExit = errors.New("non-zero exit")

	// ErrDecode indicates wslpath's output was not valid UTF-8.
	ErrDecode = errors.New("output decoding failed")
)

// LaunchError reports that the front-end executable could not be started,
// e.g. because it is not on PATH or is not executable.
type LaunchError struct {
	// Executable is the program that was started.
	Executable string
	// Cause is the error from os/exec.
	Cause error
}

func (e *LaunchError) Error() string {
	if errors.Is(e.Cause, exec.ErrNotFound) {
		return fmt.Sprintf("%s not found: is WSL installed?", e.Executable)
	}
	return fmt.Sprintf("starting %s: %v", e.Executable, e.Cause)
}

func (e *LaunchError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrLaunch.
func (e *LaunchError) Is(target error) bool { return target == ErrLaunch }

// ExitError reports a non-zero exit from the front-end or wslpath.
// Code is -1 when the process did not exit normally (killed by a signal);
// a genuine exit status of -1 is indistinguishable from that case.
type ExitError struct {
	Code int
	// Message is the diagnostic text the utility printed, if any.
	Message string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("wslpath exited with code %d", e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target is ErrExit.
func (e *ExitError) Is(target error) bool { return target == ErrExit }

// DecodeError reports that wslpath succeeded but printed bytes that are not
// valid UTF-8.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding wslpath output: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
