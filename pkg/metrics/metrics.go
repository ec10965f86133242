package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeCached    = "cached"
	OutcomeInvalid   = "invalid_request"
	OutcomeModel     = "model_error"
	OutcomeTimeout   = "model_timeout"
	OutcomeBlocked   = "model_blocked"
	OutcomeNormalize = "normalize_error"
)

// Recorder is implemented by Metrics and Nop.
type Recorder interface {
	ObserveGeneration(outcome, reason string)
	ObserveModelCall(d time.Duration)
	ObservePersistFailure()
}

type Metrics struct {
	registry     *prometheus.Registry
	generations  *prometheus.CounterVec
	modelLatency prometheus.Histogram
	persistFails prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "itinerary_generations_total",
			Help:      "Itinerary generation attempts by outcome and normalizer error code.",
		}, []string{"outcome", "reason"}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripwise",
			Name:      "model_call_duration_seconds",
			Help:      "Latency of upstream model calls.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120},
		}),
		persistFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripwise",
			Name:      "itinerary_persist_failures_total",
			Help:      "Generated itineraries that could not be saved.",
		}),
	}
	reg.MustRegister(
		m.generations,
		m.modelLatency,
		m.persistFails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveGeneration(outcome, reason string) {
	m.generations.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) ObserveModelCall(d time.Duration) {
	m.modelLatency.Observe(d.Seconds())
}

func (m *Metrics) ObservePersistFailure() {
	m.persistFails.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveGeneration(string, string) {}
func (Nop) ObserveModelCall(time.Duration)    {}
func (Nop) ObservePersistFailure()            {}
