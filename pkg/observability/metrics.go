// Package observability wires the engines' lifecycle hooks to Prometheus
// collectors. Register the collector once, pass Hooks() to the Page, and
// expose promhttp wherever the host serves HTTP.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/kinetic/pkg/domain"
)

// Metrics aggregates the engine counters.
type Metrics struct {
	reveals   *prometheus.CounterVec
	publishes prometheus.Counter
	steps     *prometheus.CounterVec
	composed  prometheus.Counter
	offset    prometheus.Gauge
}

// NewMetrics creates the collectors with the kinetic_ namespace.
func NewMetrics() *Metrics {
	return &Metrics{
		reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_reveals_total",
			Help: "Total reveal transitions, by winning detection path",
		}, []string{"path"}),
		publishes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kinetic_scroll_publishes_total",
			Help: "Total coalesced scroll state publishes",
		}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_dialog_steps_total",
			Help: "Total dialog step entries, by step",
		}, []string{"step"}),
		composed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kinetic_messages_composed_total",
			Help: "Total composed outbound messages",
		}),
		offset: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kinetic_scroll_offset",
			Help: "Last published scroll offset",
		}),
	}
}

// Register adds all collectors to the registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.reveals, m.publishes, m.steps, m.composed, m.offset} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers on the default registry.
func (m *Metrics) MustRegister() {
	prometheus.MustRegister(m.reveals, m.publishes, m.steps, m.composed, m.offset)
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReveal: func(ctx context.Context, e *domain.RevealEvent) {
			m.reveals.WithLabelValues(e.Path).Inc()
		},
		OnScrollPublish: func(ctx context.Context, e *domain.ScrollEvent) {
			m.publishes.Inc()
			m.offset.Set(e.State.Offset)
		},
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(string(e.Step)).Inc()
		},
		OnCompose: func(ctx context.Context, e *domain.ComposeEvent) {
			m.composed.Inc()
		},
	}
}
