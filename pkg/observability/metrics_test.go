package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/observability"
)

func TestMetrics_FeedFromHooks(t *testing.T) {
	m := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	hooks := m.Hooks()
	ctx := context.Background()
	base := domain.EventBase{Timestamp: time.Now()}

	hooks.OnReveal(ctx, &domain.RevealEvent{EventBase: base, Ref: "a", Path: "observer"})
	hooks.OnReveal(ctx, &domain.RevealEvent{EventBase: base, Ref: "b", Path: "fallback"})
	hooks.OnScrollPublish(ctx, &domain.ScrollEvent{EventBase: base, State: domain.ScrollState{Offset: 120}})
	hooks.OnScrollPublish(ctx, &domain.ScrollEvent{EventBase: base, State: domain.ScrollState{Offset: 300}})
	hooks.OnStepEnter(ctx, &domain.StepEvent{EventBase: base, SessionID: "s", Step: domain.StepStart})
	hooks.OnStepEnter(ctx, &domain.StepEvent{EventBase: base, SessionID: "s", Step: domain.StepWorkType})
	hooks.OnCompose(ctx, &domain.ComposeEvent{EventBase: base, SessionID: "s"})

	families, err := reg.Gather()
	require.NoError(t, err)

	got := make(map[string]float64)
	for _, mf := range families {
		var total float64
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if g := metric.GetGauge(); g != nil {
				total += g.GetValue()
			}
		}
		got[mf.GetName()] = total
	}

	assert.Equal(t, float64(2), got["kinetic_reveals_total"])
	assert.Equal(t, float64(2), got["kinetic_scroll_publishes_total"])
	assert.Equal(t, float64(2), got["kinetic_dialog_steps_total"])
	assert.Equal(t, float64(1), got["kinetic_messages_composed_total"])
	assert.Equal(t, float64(300), got["kinetic_scroll_offset"])
}

func TestMetrics_RegisterTwiceFails(t *testing.T) {
	m := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}
