package errors

import (
	"fmt"
	"strings"
)

var (
	// ErrSyntax is returned when a python source file cannot be parsed.
	ErrSyntax = New("python source contains syntax errors")
	// ErrInvalidJobCount is returned when targets are split over less than one job.
	ErrInvalidJobCount = New("number of jobs must be at least 1")
	// ErrMissingCollections is returned when no collection to test was given.
	ErrMissingCollections = New("no collection to test")
	// ErrNotMergeable is returned when a Depends-On pull request cannot be merged.
	ErrNotMergeable = New("pull request is not mergeable")
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrNon2xxStatus is returned by the http helper for any non 2xx response.
	ErrNon2xxStatus = New("non 2xx status code")
)

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// ConfigError is returned for missing or malformed inputs.
type ConfigError struct {
	Message string
	Err     error
}

// Error gives a human-readable description of the error.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Configf returns a ConfigError with a formatted message.
func Configf(format string, args ...interface{}) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ConfigWrap returns a ConfigError wrapping err.
func ConfigWrap(err error, message string) error {
	return &ConfigError{Message: message, Err: err}
}

// CommandError is returned when an external command exits with a failure.
type CommandError struct {
	Command []string
	Stderr  string
	Err     error
}

// Error gives a human-readable description of the error.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", strings.Join(e.Command, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the underlying process error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
