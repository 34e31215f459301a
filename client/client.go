package client

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/reportobello/reportobello-go/client/internal/api"
)

// DefaultBaseURL is the public Reportobello instance.
const DefaultBaseURL = "https://reportobello.com"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to one Reportobello instance with one API key. Its
// configuration never changes after New, so a Client may be shared by any
// number of goroutines.
type Client struct {
	baseURL string
	http    *http.Client
	apiKey  string // sent as a bearer token on every request
}

// New constructs a Client for apiKey. The base URL defaults to
// DefaultBaseURL and can be changed with WithBaseURL.
//
// New fails with a *ConfigError when the base URL is not an absolute http(s)
// URL or an option is given an invalid value. The API key itself is not
// checked; the service rejects bad keys.
func New(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	base, err := normalizeBaseURL(c.baseURL)
	if err != nil {
		return nil, err
	}
	c.baseURL = base

	c.wrapTransportWithMetrics()
	// Wrap HTTP transport to automatically add Authorization header
	c.wrapTransportWithAPIKey()

	return c, nil
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// normalizeBaseURL checks that raw is an absolute http(s) URL with a host and
// nothing after its path, and strips trailing slashes so paths can be
// appended directly.
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigError{Field: "base URL", Value: raw, Err: err}
	}
	if !u.IsAbs() || u.Host == "" {
		return "", &ConfigError{Field: "base URL", Value: raw, Err: fmt.Errorf("must be an absolute URL with a host")}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ConfigError{Field: "base URL", Value: raw, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.User != nil {
		return "", &ConfigError{Field: "base URL", Value: raw, Err: fmt.Errorf("must not carry user info")}
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" || strings.ContainsAny(raw, "?#") {
		return "", &ConfigError{Field: "base URL", Value: raw, Err: fmt.Errorf("must not have a query or fragment")}
	}
	return strings.TrimRight(raw, "/"), nil
}

// wrapTransportWithAPIKey wraps the HTTP client's transport to automatically
// add the Authorization header to all requests using the configured API key.
func (c *Client) wrapTransportWithAPIKey() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{
		base:   baseTransport,
		apiKey: c.apiKey,
	}
}

// apiKeyTransport wraps an http.RoundTripper to automatically add Authorization header
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Template operations - delegated to internal/api
// --------------------------------------------------------------------

// UploadTemplate uploads content as the newest version of the named
// template. The text is sent exactly as given.
func (c *Client) UploadTemplate(ctx context.Context, name, content string) error {
	return api.UploadTemplate(ctx, c.http, c.baseURL, name, content)
}

// UploadTemplateFile reads the template at path and uploads it under name.
func (c *Client) UploadTemplateFile(ctx context.Context, name, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}
	return c.UploadTemplate(ctx, name, string(b))
}

// UploadTemplateFS reads the template at path in fsys and uploads it under
// name. It pairs with go:embed for templates shipped inside a binary.
func (c *Client) UploadTemplateFS(ctx context.Context, fsys fs.FS, name, path string) error {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}
	return c.UploadTemplate(ctx, name, string(b))
}

// GetTemplateVersions returns every stored version of the named template.
// The order is whatever the service returns; callers that need a specific
// order should sort on Version.
func (c *Client) GetTemplateVersions(ctx context.Context, name string) ([]Template, error) {
	return api.GetTemplateVersions(ctx, c.http, c.baseURL, name)
}

// --------------------------------------------------------------------
// Environment variable operations - delegated to internal/api
// --------------------------------------------------------------------

// SetEnvironmentVariables stores vars for use during rendering. The mapping
// is sent whole in one request.
func (c *Client) SetEnvironmentVariables(ctx context.Context, vars map[string]string) error {
	return api.SetEnvironmentVariables(ctx, c.http, c.baseURL, vars)
}

// DeleteEnvironmentVariables removes the named variables.
func (c *Client) DeleteEnvironmentVariables(ctx context.Context, keys []string) error {
	return api.DeleteEnvironmentVariables(ctx, c.http, c.baseURL, keys)
}

// --------------------------------------------------------------------
// Build operations - delegated to internal/api
// --------------------------------------------------------------------

// RunReport renders templateName with data and returns the URL of the
// produced PDF. data is JSON-encoded as is. With preview set the service
// builds a preview instead of a stored report.
func (c *Client) RunReport(ctx context.Context, templateName string, data any, preview bool) (*url.URL, error) {
	return api.RunReport(ctx, c.http, c.baseURL, templateName, data, preview)
}
