package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run in the order given, before the metrics and authorization
// wrappers are installed, so transport-related options end up underneath the
// API-key wrapper. An option returning an error makes New fail.
type Option func(*Client) error

// WithBaseURL points the client at a different Reportobello instance, such as
// a self-hosted one. The value is validated by New.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient uses a copy of hc for all requests. The caller's client is
// never modified; its Transport, Jar and Timeout are carried over.
//
// Apply it before WithDebugLogging or WithHTTPTimeout, since it replaces the
// client those options adjust.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return &ConfigError{Field: "http client", Err: fmt.Errorf("must not be nil")}
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// The SDK sets no timeout of its own. Prefer per-call context deadlines; this
// is a coarse safety net that bounds a whole request including reading the
// response. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return &ConfigError{Field: "http timeout", Value: d.String(), Err: fmt.Errorf("must be > 0")}
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// The debug transport is installed beneath the API-key wrapper. The bearer
// token is redacted from the dumps, but bodies (templates, report data) are
// logged in full, so keep this out of production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, ok := c.http.Transport.(*debugTransport); ok {
				return nil
			}
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}
