package errors

import (
	"errors"
	"fmt"
)

// FatalStartupError indicates the provisioning entrypoint cannot hand off to
// the wrapped application: a config patch failed or a required credential is
// missing. The process must exit non-zero before the application starts.
type FatalStartupError struct {
	Reason string
	Path   string
	Err    error
}

func NewFatalStartupError(reason, path string, err error) *FatalStartupError {
	return &FatalStartupError{Reason: reason, Path: path, Err: err}
}

func (e *FatalStartupError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("startup failed: %s", e.Reason)
	}
	return fmt.Sprintf("startup failed: %s: %s", e.Reason, e.Path)
}

func (e *FatalStartupError) Unwrap() error {
	return e.Err
}

// IsFatalStartupError checks if the error is a FatalStartupError.
func IsFatalStartupError(err error) bool {
	var e *FatalStartupError
	return errors.As(err, &e)
}

// BootstrapError indicates the session bootstrap could not bring the
// installation to a ready state. The whole test session is invalid; there is
// no retry.
type BootstrapError struct {
	Step     string
	Selector string
	Err      error
}

func NewBootstrapError(step, selector string, err error) *BootstrapError {
	return &BootstrapError{Step: step, Selector: selector, Err: err}
}

func (e *BootstrapError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("bootstrap failed at %s", e.Step)
	}
	return fmt.Sprintf("bootstrap failed at %s (selector %q)", e.Step, e.Selector)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// IsBootstrapError checks if the error is a BootstrapError.
func IsBootstrapError(err error) bool {
	var e *BootstrapError
	return errors.As(err, &e)
}

// FixtureError indicates the per-test fixture reset failed. The transaction
// has been rolled back; only the current test case is affected.
type FixtureError struct {
	Key string
	Err error
}

func NewFixtureError(key string, err error) *FixtureError {
	return &FixtureError{Key: key, Err: err}
}

func (e *FixtureError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("fixture reset failed: %v", e.Err)
	}
	return fmt.Sprintf("fixture reset failed on %q: %v", e.Key, e.Err)
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

// IsFixtureError checks if the error is a FixtureError.
func IsFixtureError(err error) bool {
	var e *FixtureError
	return errors.As(err, &e)
}

// InvalidVersionFormatError indicates a version string could not be compared.
// Callers should treat it as a configuration error and abort whatever action
// depended on the comparison.
type InvalidVersionFormatError struct {
	Input string
}

func NewInvalidVersionFormatError(input string) *InvalidVersionFormatError {
	return &InvalidVersionFormatError{Input: input}
}

func (e *InvalidVersionFormatError) Error() string {
	return fmt.Sprintf("invalid version format: %q", e.Input)
}

// IsInvalidVersionFormatError checks if the error is an InvalidVersionFormatError.
func IsInvalidVersionFormatError(err error) bool {
	var e *InvalidVersionFormatError
	return errors.As(err, &e)
}
