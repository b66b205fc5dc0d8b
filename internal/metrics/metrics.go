// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Source label values for catalog requests.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceError  = "error"
)

// Metrics groups the collectors on a private registry so tests and
// multiple servers do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	WizardTransitions *prometheus.CounterVec
	PlansConfirmed    prometheus.Counter
	Inquiries         *prometheus.CounterVec
	CatalogRequests   *prometheus.CounterVec
	CatalogDuration   *prometheus.HistogramVec
}

// New registers all collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		WizardTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wander_wizard_transitions_total",
				Help: "Wizard operations by name and outcome",
			},
			[]string{"op", "result"},
		),
		PlansConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wander_plans_confirmed_total",
			Help: "Itineraries that reached the confirmation step",
		}),
		Inquiries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wander_inquiries_total",
				Help: "Contact form submissions by outcome",
			},
			[]string{"result"},
		),
		CatalogRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wander_catalog_requests_total",
				Help: "Catalog lookups by endpoint and where the answer came from",
			},
			[]string{"endpoint", "source"},
		),
		CatalogDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wander_catalog_request_duration_seconds",
				Help:    "Duration of remote catalog requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}

	m.registry.MustRegister(
		m.WizardTransitions,
		m.PlansConfirmed,
		m.Inquiries,
		m.CatalogRequests,
		m.CatalogDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Transition records one wizard operation.
func (m *Metrics) Transition(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	m.WizardTransitions.WithLabelValues(op, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
