package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for MessagesTotal.
const (
	OutcomePersisted    = "persisted"
	OutcomeDecodeError  = "decode_error"
	OutcomeUnsupported  = "unsupported_uplink"
	OutcomeUnhandled    = "unhandled_type"
	OutcomePersistError = "persist_error"
)

type Metrics struct {
	MessagesTotal    *prometheus.CounterVec
	PersistSeconds   prometheus.Histogram
	ConnectionsTotal *prometheus.CounterVec
	MirrorErrors     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the ingestion collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thsensor",
			Name:      "messages_total",
			Help:      "Uplink messages handled, by outcome.",
		}, []string{"outcome"}),
		PersistSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "thsensor",
			Name:      "persist_seconds",
			Help:      "Time spent committing one event.",
			Buckets:   prometheus.DefBuckets,
		}),
		ConnectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thsensor",
			Name:      "connection_events_total",
			Help:      "Transport connection changes, by state.",
		}, []string{"state"}),
		MirrorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thsensor",
			Name:      "mirror_errors_total",
			Help:      "Failed best-effort mirror writes, by mirror.",
		}, []string{"mirror"}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.MessagesTotal,
		m.PersistSeconds,
		m.ConnectionsTotal,
		m.MirrorErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
