package client

import (
	sdkerrors "github.com/reportobello/reportobello-go/client/internal/errors"
)

// Re-export the SDK error types so callers compare against a single package.
type (
	// APIError is returned for any non-2xx response; Error() is the raw body.
	APIError = sdkerrors.APIError
	// DecodeError is returned when a 2xx body has an unexpected shape.
	DecodeError = sdkerrors.DecodeError
	// ConfigError is returned by New for invalid settings.
	ConfigError = sdkerrors.ConfigError
)

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool { return sdkerrors.IsAPIError(err) }

// StatusCode returns the HTTP status of an *APIError in err's chain, or 0.
func StatusCode(err error) int { return sdkerrors.StatusCode(err) }
