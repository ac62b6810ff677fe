// Package apperr holds the error taxonomy shared by the fetch and render layers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote matches any RemoteError via errors.Is
	ErrRemote = errors.New("remote source error")

	// ErrValidation matches any ValidationError via errors.Is
	ErrValidation = errors.New("validation error")

	// ErrConfig matches any ConfigError via errors.Is
	ErrConfig = errors.New("configuration error")

	// ErrRender matches any RenderError via errors.Is
	ErrRender = errors.New("render error")
)

// RemoteError reports a fetch response that did not carry the expected records.
// Payload keeps the raw response body for diagnostics.
type RemoteError struct {
	URL     string
	Query   string
	Payload []byte
	Err     error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("kintone API error: %s", string(e.Payload))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// ValidationError is a user-facing precondition that was not met.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a ValidationError
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConfigError reports a preference or resource that could not be loaded.
type ConfigError struct {
	Key string
	Err error
}

// NewConfigError creates a ConfigError for the given key
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// RenderError reports a field that was missing or malformed during composition.
type RenderError struct {
	Field string
	Err   error
}

// NewRenderError creates a RenderError for the given field
func NewRenderError(field string, err error) *RenderError {
	return &RenderError{Field: field, Err: err}
}

func (e *RenderError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("render failed: %v", e.Err)
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRender }
