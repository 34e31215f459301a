package client

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHTTPTimeout(t *testing.T) {
	c := &Client{http: &http.Client{}}
	require.NoError(t, WithHTTPTimeout(5*time.Second)(c))
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestWithDebugLogging_WrapsTransport(t *testing.T) {
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c, err := New("test-api-key", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	require.NoError(t, err)

	mt, ok := c.http.Transport.(*apiKeyTransport).base.(*metricsTransport)
	require.True(t, ok, "metrics transport expected under the API-key wrapper")
	_, ok = mt.base.(*debugTransport)
	require.True(t, ok, "debug transport expected under the metrics wrapper")

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	_, err = c.http.Do(req)
	require.NoError(t, err)
	assert.True(t, called, "base transport not invoked")
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("REPORTOBELLO_DEBUG", "true")
	c, err := New("k")
	require.NoError(t, err)
	mt := c.http.Transport.(*apiKeyTransport).base.(*metricsTransport)
	_, ok := mt.base.(*debugTransport)
	assert.True(t, ok, "expected debugTransport to be installed when REPORTOBELLO_DEBUG=true")
}

func TestDebugTransport_RedactsBearerToken(t *testing.T) {
	var buf bytes.Buffer
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()

	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	c, err := New("super-secret", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	require.NoError(t, err)
	require.NoError(t, c.UploadTemplate(context.Background(), "t", "body"))

	out := buf.String()
	assert.Contains(t, out, "request_id")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "super-secret")
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("k", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	require.NoError(t, err)
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	_, err = c.http.Do(req)
	require.Error(t, err)
}

func TestMetrics_CountByOperationAndCode(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusTeapot, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c, err := New("k", WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	counter := requestsTotal.WithLabelValues("delete_env", "418")
	before := testutil.ToFloat64(counter)
	err = c.DeleteEnvironmentVariables(context.Background(), []string{"A"})
	require.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
