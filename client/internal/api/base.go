package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	sdkerrors "github.com/reportobello/reportobello-go/client/internal/errors"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Operation names, attached to each request's context for metrics.
const (
	OpUploadTemplate       = "upload_template"
	OpGetTemplateVersions  = "get_template_versions"
	OpSetEnvironmentVars   = "set_env"
	OpDeleteEnvironmentVar = "delete_env"
	OpRunReport            = "run_report"
)

type operationKey struct{}

// OperationFrom returns the operation name stored on a request context by
// this package, or "unknown".
func OperationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok {
		return op
	}
	return "unknown"
}

// do issues one request and returns the response when the status is 2xx.
// Any other status is drained into an *APIError. Transport errors from
// httpClient.Do are returned as is.
func do(ctx context.Context, httpClient HTTPClient, op, method, rawURL string, body io.Reader, contentType string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithValue(ctx, operationKey{}, op)

	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	// Note: Authorization header will be added by transport layer

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, sdkerrors.FromResponse(resp)
	}
	return resp, nil
}

// discard drains and closes a successful response whose body is unused, so
// the connection can go back to the pool.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// readText reads a successful response body to a string and closes it.
func readText(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const upperhex = "0123456789ABCDEF"

// EscapeDataString percent-encodes every byte of s outside the RFC 3986
// unreserved set. Unlike url.PathEscape it also encodes sub-delimiters such
// as ',' and '=', so the result is safe both as a path segment and as one
// element of a comma-joined query value.
func EscapeDataString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

func templateURL(baseURL, name string) string {
	return baseURL + "/api/v1/template/" + EscapeDataString(name)
}
