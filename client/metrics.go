package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reportobello/reportobello-go/client/internal/api"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportobello_client",
			Name:      "requests_total",
			Help:      "HTTP requests issued by the SDK, by operation and status code (\"error\" for transport failures).",
		},
		[]string{"operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reportobello_client",
			Name:      "request_duration_seconds",
			Help:      "Time until response headers, by operation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// metricsTransport records one sample per round trip. The operation label is
// read from the request context set by internal/api.
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	op := api.OperationFrom(req.Context())
	start := time.Now()
	resp, err := mt.base.RoundTrip(req)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (c *Client) wrapTransportWithMetrics() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &metricsTransport{base: baseTransport}
}
