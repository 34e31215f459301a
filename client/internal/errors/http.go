package errors

import (
	"errors"
	"io"
	"net/http"
)

// FromResponse builds an APIError from a non-2xx response, reading the whole
// body as text. If the body cannot be read in full the read error is returned
// as is, so a truncated body never passes for the service's message.
func FromResponse(resp *http.Response) error {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
}

// NewDecodeError creates a DecodeError for the named operation.
func NewDecodeError(operation, body string, err error) *DecodeError {
	return &DecodeError{Operation: operation, Body: body, Err: err}
}

// IsAPIError reports whether err is, or wraps, an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// StatusCode returns the HTTP status carried by an APIError in err's chain,
// or 0 when there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
