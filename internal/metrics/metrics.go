package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the pipeline's observability surface as Prometheus
// collectors: totals in, accepted, rejected by reason, deduplicated, and
// batch duration.
type Metrics struct {
	eventsIn     prometheus.Counter
	accepted     prometheus.Counter
	rejected     *prometheus.CounterVec
	deduplicated prometheus.Counter
	batchDur     prometheus.Summary

	registry *prometheus.Registry
	server   *http.Server
}

// New creates and registers the pipeline metrics on a private registry, so
// concurrent pipelines in one process never fight over collector names.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.eventsIn = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "discovr",
		Subsystem: "pipeline",
		Name:      "events_in_total",
		Help:      "Candidate events received",
	})
	m.accepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "discovr",
		Subsystem: "pipeline",
		Name:      "events_accepted_total",
		Help:      "Events admitted and normalized",
	})
	m.rejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "discovr",
		Subsystem: "pipeline",
		Name:      "events_rejected_total",
		Help:      "Events rejected, by reason code",
	}, []string{"reason"})
	m.deduplicated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "discovr",
		Subsystem: "pipeline",
		Name:      "events_deduplicated_total",
		Help:      "Duplicate events dropped within a batch",
	})
	m.batchDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "discovr",
		Subsystem: "pipeline",
		Name:      "batch_duration_seconds",
		Help:      "Time spent processing a batch",
	})

	m.registry.MustRegister(m.eventsIn, m.accepted, m.rejected, m.deduplicated, m.batchDur)
	return m
}

// ObserveBatch records one pipeline invocation.
func (m *Metrics) ObserveBatch(total, accepted, deduplicated int, rejectedByReason map[string]int, dur time.Duration) {
	m.eventsIn.Add(float64(total))
	m.accepted.Add(float64(accepted))
	m.deduplicated.Add(float64(deduplicated))
	for reason, n := range rejectedByReason {
		m.rejected.WithLabelValues(reason).Add(float64(n))
	}
	m.batchDur.Observe(dur.Seconds())
}

// Serve exposes /metrics and /healthz on the given address, blocking until
// the server stops.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	m.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return m.server.ListenAndServe()
}

// Shutdown stops the metrics listener, if one was started.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
