// Package metrics exports query engine metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cognicore/dinebot/pkg/dinebot/filter"
	"github.com/cognicore/dinebot/pkg/dinebot/intent"
)

const namespace = "dinebot"

// Metrics records one observation per answered query. It implements
// dinebot.Observer.
type Metrics struct {
	registry *prometheus.Registry

	// QueriesTotal counts answered queries.
	// Labels: intent, status
	QueriesTotal *prometheus.CounterVec

	// QueryDuration tracks end-to-end answer latency.
	QueryDuration prometheus.Histogram

	// Confidence tracks classifier confidence per intent.
	// Labels: intent
	Confidence *prometheus.HistogramVec

	// CatalogItems is the number of items on the loaded menu.
	CatalogItems prometheus.Gauge
}

// New registers the engine metrics, plus Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry registers the engine metrics on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "queries_total",
				Help:      "Total number of answered queries by intent and result status",
			},
			[]string{"intent", "status"},
		),
		QueryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "query_duration_seconds",
				Help:      "Time to classify, filter and render one query",
				Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
			},
		),
		Confidence: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "intent_confidence",
				Help:      "Classifier confidence by intent",
				Buckets:   []float64{.3, .5, .6, .7, .8, .9, .95, 1},
			},
			[]string{"intent"},
		),
		CatalogItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "items",
				Help:      "Number of items on the loaded menu",
			},
		),
	}
}

// ObserveQuery records one answered query.
func (m *Metrics) ObserveQuery(in intent.Intent, status filter.Status, confidence float64, elapsed time.Duration) {
	m.QueriesTotal.WithLabelValues(string(in), string(status)).Inc()
	m.QueryDuration.Observe(elapsed.Seconds())
	m.Confidence.WithLabelValues(string(in)).Observe(confidence)
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
