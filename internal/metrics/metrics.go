// Package metrics counts what happens to the bill document. A single-user
// program has no scrape endpoint, so the registry is written to a file in
// the node-exporter textfile format instead.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	loadFallbacks *prometheus.CounterVec
	saves         *prometheus.CounterVec
	bills         prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billkeeper",
			Name:      "operations_total",
			Help:      "Document operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		loadFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billkeeper",
			Name:      "document_load_fallbacks_total",
			Help:      "Loads that fell back to the default document, by reason.",
		}, []string{"reason"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billkeeper",
			Name:      "document_saves_total",
			Help:      "Document saves by outcome.",
		}, []string{"outcome"}),
		bills: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "billkeeper",
			Name:      "bills",
			Help:      "Number of bills in the live document.",
		}),
	}
	m.registry.MustRegister(m.operations, m.loadFallbacks, m.saves, m.bills)
	return m
}

// Operation counts one finished operation.
func (m *Metrics) Operation(name, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(name, outcome).Inc()
}

// LoadFallback counts a load that returned the default document.
func (m *Metrics) LoadFallback(reason string) {
	if m == nil {
		return
	}
	m.loadFallbacks.WithLabelValues(reason).Inc()
}

// Save counts a save attempt.
func (m *Metrics) Save(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.saves.WithLabelValues(OutcomeError).Inc()
		return
	}
	m.saves.WithLabelValues(OutcomeOK).Inc()
}

// SetBills records the live bill count.
func (m *Metrics) SetBills(n int) {
	if m == nil {
		return
	}
	m.bills.Set(float64(n))
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
