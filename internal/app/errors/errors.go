package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Pipeline error taxonomy. Every stage failure wraps exactly one of these so
// callers can classify with errors.Is.
var (
	ErrExtraction      = New("audio extraction failed")
	ErrBackend         = New("transcription backend failed")
	ErrParse           = New("unrecognized backend response")
	ErrEmptyTranscript = New("no usable transcript text")
	ErrIO              = New("export write failed")
	ErrConfig          = New("invalid configuration")
)

var (
	ErrMissingAPIKey   = Wrap(ErrConfig, "API key is required")
	ErrUnknownBackend  = Wrap(ErrConfig, "unknown transcription backend")
	ErrUnsupportedFile = Wrap(ErrIO, "unsupported export format")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// BackendError describes a failed backend call. Exactly one of StatusCode,
// ExitCode or TimedOut identifies the failure; Body carries the response body
// or the process stderr.
type BackendError struct {
	Backend    string
	StatusCode int
	ExitCode   int
	TimedOut   bool
	Timeout    time.Duration
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("%s backend timed out after %s", e.Backend, e.Timeout)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s backend returned status %d: %s", e.Backend, e.StatusCode, e.Body)
	case e.ExitCode != 0:
		return fmt.Sprintf("%s backend exited with code %d: %s", e.Backend, e.ExitCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s backend failed: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s backend failed", e.Backend)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *BackendError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrBackend, e.Err}
	}
	return []error{ErrBackend}
}

// IsTimeout reports whether err is a backend timeout.
func IsTimeout(err error) bool {
	var be *BackendError
	return stderrors.As(err, &be) && be.TimedOut
}

// Kind returns a short classification of err, used for metrics labels and
// API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case stderrors.Is(err, ErrConfig):
		return "config"
	case stderrors.Is(err, ErrExtraction):
		return "extraction"
	case IsTimeout(err):
		return "timeout"
	case stderrors.Is(err, ErrBackend):
		return "backend"
	case stderrors.Is(err, ErrParse):
		return "parse"
	case stderrors.Is(err, ErrEmptyTranscript):
		return "empty_transcript"
	case stderrors.Is(err, ErrIO):
		return "io"
	}
	return "unknown"
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Wrap(ErrConfig, fmt.Sprintf("%s is required", field))
}
