package metrics

import (
	"strconv"
	"time"

	"ishop/internal/common"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ishop"

// Metrics holds the collectors exported on /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	imageOps       *prometheus.CounterVec
	imageDuration  *prometheus.HistogramVec
	uploadedBytes  prometheus.Counter
	orphansRemoved prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// MustNew registers the collectors with reg and panics on a registration
// conflict.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		imageOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "operations_total",
			Help:      "Image operations by outcome. result is ok or the failure kind.",
		}, []string{"operation", "result"}),
		imageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "operation_duration_seconds",
			Help:      "Latency of image operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		uploadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "uploaded_bytes_total",
			Help:      "Bytes of successfully ingested images.",
		}),
		orphansRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "orphans_removed_total",
			Help:      "Blobs deleted by the orphan sweeper.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.imageOps, m.imageDuration, m.uploadedBytes, m.orphansRemoved, m.httpRequests, m.httpDuration)
	return m
}

// ObserveImageOp records one image operation and its outcome.
func (m *Metrics) ObserveImageOp(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(common.KindOf(err))
	}
	m.imageOps.WithLabelValues(operation, result).Inc()
	m.imageDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) AddUploadedBytes(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.uploadedBytes.Add(float64(n))
}

func (m *Metrics) AddOrphansRemoved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.orphansRemoved.Add(float64(n))
}

// ObserveHTTP records a served request. route is the matched route pattern,
// not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
