package pinot

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "pinot_cluster_info"

// RequestMonitor receives the outcome and duration of every controller and broker request.
// statusCode is 0 when the request never got a response.
type RequestMonitor interface {
	MonitorRequest(req *http.Request, statusCode int, duration time.Duration)
}

var (
	// Gather is the registry holding the default request metrics.
	Gather = prometheus.NewRegistry()

	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_seconds",
			Help:      "Bucketed histogram of controller and broker request time.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"method", "host", "code"})

	RequestFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_failures",
			Help:      "Counter of controller and broker requests that did not return 2xx.",
		}, []string{"method", "host"})
)

func init() {
	Gather.MustRegister(RequestDurationHistogram)
	Gather.MustRegister(RequestFailureCounter)
}

type prometheusRequestMonitor struct{}

func (prometheusRequestMonitor) MonitorRequest(req *http.Request, statusCode int, duration time.Duration) {
	host := req.URL.Host
	RequestDurationHistogram.WithLabelValues(req.Method, host, strconv.Itoa(statusCode)).Observe(duration.Seconds())
	if !isValidPinotHTTPResponseCode(statusCode) {
		RequestFailureCounter.WithLabelValues(req.Method, host).Inc()
	}
}
