package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors on a private registry,
// so building it more than once (tests) never panics on duplicates.
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	quotesCreated    prometheus.Counter
	statusChanges    *prometheus.CounterVec
	sequenceFailures *prometheus.CounterVec
	sessionEvents    *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "presupuestos_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		quotesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "presupuestos_quotes_created_total",
			Help: "Quotes created.",
		}),
		statusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presupuestos_quote_status_changes_total",
				Help: "Quote status updates by target status.",
			},
			[]string{"status"},
		),
		sequenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presupuestos_sequence_failures_total",
				Help: "Sequence number generation failures by strategy.",
			},
			[]string{"strategy"},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presupuestos_session_events_total",
				Help: "Session change events by kind.",
			},
			[]string{"kind"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presupuestos_cache_lookups_total",
				Help: "Cache lookups by cache and result.",
			},
			[]string{"cache", "result"},
		),
	}
}

func (m *Metrics) RecordRequest(method, route, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func (m *Metrics) IncrQuoteCreated() {
	m.quotesCreated.Inc()
}

func (m *Metrics) IncrStatusChange(status string) {
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrSequenceFailure(strategy string) {
	m.sequenceFailures.WithLabelValues(strategy).Inc()
}

func (m *Metrics) IncrSessionEvent(kind string) {
	m.sessionEvents.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheLookups.WithLabelValues(cache, "hit").Inc()
}

func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheLookups.WithLabelValues(cache, "miss").Inc()
}
