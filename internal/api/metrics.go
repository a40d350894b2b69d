package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

// Outcome label values.
const (
	outcomeSuccess              = "success"
	outcomeCorruptImage         = "corrupt_image"
	outcomeInsufficientCapacity = "insufficient_capacity"
	outcomeNoMessage            = "no_message"
	outcomeError                = "error"
)

// Metrics holds the Prometheus collectors of one API server.
type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	payloadBytes *prometheus.HistogramVec
}

// NewMetrics registers the API collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "image_steg",
				Name:      "operations_total",
				Help:      "Number of encode, decode and capacity operations by outcome.",
			},
			[]string{"strategy", "operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "image_steg",
				Name:      "operation_duration_seconds",
				Help:      "Time spent loading, transforming and serializing images.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"strategy", "operation"},
		),
		payloadBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "image_steg",
				Name:      "payload_bytes",
				Help:      "Length of messages embedded or recovered.",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
			},
			[]string{"strategy", "operation"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// observe records one finished operation. payload is the message length and
// is only recorded on success.
func (m *Metrics) observe(strategy, operation string, start time.Time, payload int, err error) {
	m.operations.WithLabelValues(strategy, operation, outcome(err)).Inc()
	m.duration.WithLabelValues(strategy, operation).Observe(time.Since(start).Seconds())
	if err == nil && payload >= 0 {
		m.payloadBytes.WithLabelValues(strategy, operation).Observe(float64(payload))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, raster.ErrCorruptImage):
		return outcomeCorruptImage
	case errors.Is(err, steg.ErrInsufficientCapacity):
		return outcomeInsufficientCapacity
	case errors.Is(err, steg.ErrNoMessageFound):
		return outcomeNoMessage
	default:
		return outcomeError
	}
}
