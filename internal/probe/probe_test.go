package probe_test

import (
	"testing"

	"github.com/aretw0/kinetic/internal/probe"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		observer    bool
		reduced     bool
		hasObserver bool
		degraded    bool
	}{
		{name: "full surface", observer: true, reduced: false, hasObserver: true, degraded: false},
		{name: "no observer", observer: false, reduced: false, hasObserver: false, degraded: true},
		{name: "reduced motion", observer: true, reduced: true, hasObserver: true, degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := sim.NewPage(600)
			page.SetObserverAvailable(tt.observer)
			page.SetReducedMotion(tt.reduced)

			caps := probe.Detect(page)
			if caps.HasObserver != tt.hasObserver {
				t.Errorf("HasObserver = %v, want %v", caps.HasObserver, tt.hasObserver)
			}
			if caps.ReducedMotion != tt.reduced {
				t.Errorf("ReducedMotion = %v, want %v", caps.ReducedMotion, tt.reduced)
			}
			if caps.Degraded() != tt.degraded {
				t.Errorf("Degraded() = %v, want %v", caps.Degraded(), tt.degraded)
			}
		})
	}
}
