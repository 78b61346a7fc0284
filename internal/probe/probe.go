// Package probe implements the Capability Probe: a single startup check of
// the host surface that every motion engine reads before attaching any
// listener.
package probe

import (
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// probeMargin is only used to test for the primitive's existence; the
// throwaway observer is never asked to watch anything.
var probeMargin = domain.Margin{}

// Detect queries the surface once and returns the immutable capability set.
func Detect(surface ports.Surface) domain.Capabilities {
	_, hasObserver := surface.NewObserver(probeMargin, func(domain.ElementRef) {})
	return domain.Capabilities{
		HasObserver:   hasObserver,
		ReducedMotion: surface.ReducedMotion(),
	}
}
