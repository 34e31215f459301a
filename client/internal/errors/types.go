// Package errors defines the error types surfaced by the client SDK.
//
// None of them carry retry hints: every failure goes straight back to the
// caller and the SDK never retries on its own.
package errors

import "fmt"

// APIError is returned for any non-2xx response. Body holds the response text
// exactly as the service sent it; the service's error format is not
// guaranteed, so nothing is parsed out of it.
type APIError struct {
	StatusCode int
	Body       string
}

// Error returns the raw response body.
func (e *APIError) Error() string {
	return e.Body
}

// DecodeError is returned when a 2xx response body does not have the shape
// the operation expects (a JSON version list, an absolute URL).
type DecodeError struct {
	Operation string
	Body      string
	Err       error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConfigError is returned by client construction when a setting is invalid.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
