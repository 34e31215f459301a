package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// debugTransport logs every request and response through the global zerolog
// logger at debug level.
//
// Enable it with WithDebugLogging(true), or without code changes by setting
// REPORTOBELLO_DEBUG=true (or DEBUG=true). Each exchange gets a request_id so
// the request and response lines can be paired when calls run concurrently.
//
// Example usage:
//
//	export REPORTOBELLO_DEBUG=true
//	go run main.go  # Client will now log all HTTP traffic
type debugTransport struct{ base http.RoundTripper }

var bearerPattern = regexp.MustCompile(`(?mi)^(Authorization:\s*Bearer\s+)\S+`)

func redactDump(dump []byte) string {
	return string(bearerPattern.ReplaceAll(dump, []byte("${1}[REDACTED]")))
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	requestID := uuid.NewString()

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_dump", redactDump(reqDump)).
			Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("status_code", resp.StatusCode).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether REPORTOBELLO_DEBUG or DEBUG is set to
// "true" (case-sensitive).
func debugLoggingRequested() bool {
	return os.Getenv("REPORTOBELLO_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
