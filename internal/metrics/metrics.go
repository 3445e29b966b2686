// Package metrics holds the process counters for planning and logging
// sessions. Values are written to a node-exporter textfile on exit.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "golfdrills"

// Metrics is a private registry plus the collectors registered on it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sessionsSaved    prometheus.Counter
	corruptPayloads  prometheus.Counter
	unresolvedDrills prometheus.Counter
	recommendations  *prometheus.CounterVec
	plannedMinutes   prometheus.Histogram
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_saved_total",
			Help:      "Sessions appended to the store.",
		}),
		corruptPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_payload_corrupt_total",
			Help:      "Loads that found an unreadable session payload.",
		}),
		unresolvedDrills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_drills_total",
			Help:      "Drill ids skipped while building a session.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Drill recommendations served, by budget outcome.",
		}, []string{"outcome"}),
		plannedMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "planned_minutes",
			Help:      "Total minutes of recommended drill plans.",
			Buckets:   []float64{15, 30, 45, 60, 90, 120, 180, 240},
		}),
	}
	m.registry.MustRegister(
		m.sessionsSaved,
		m.corruptPayloads,
		m.unresolvedDrills,
		m.recommendations,
		m.plannedMinutes,
	)
	return m
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// SessionSaved counts one persisted session.
func (m *Metrics) SessionSaved() {
	if m == nil {
		return
	}
	m.sessionsSaved.Inc()
}

// CorruptPayload counts one unreadable store payload.
func (m *Metrics) CorruptPayload() {
	if m == nil {
		return
	}
	m.corruptPayloads.Inc()
}

// UnresolvedDrill counts one skipped drill reference.
func (m *Metrics) UnresolvedDrill() {
	if m == nil {
		return
	}
	m.unresolvedDrills.Inc()
}

// Recommended records a served plan. fallback reports whether the budget
// fell back to the leading drills.
func (m *Metrics) Recommended(totalMinutes int, fallback bool) {
	if m == nil {
		return
	}
	outcome := "fit"
	if fallback {
		outcome = "fallback"
	}
	m.recommendations.WithLabelValues(outcome).Inc()
	m.plannedMinutes.Observe(float64(totalMinutes))
}

// WriteTextfile writes the registry in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
