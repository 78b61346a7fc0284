package domain

// Capabilities is the Capability Probe's output: computed once at page
// initialization and read-only thereafter. Every motion engine consults it
// before attaching any listener.
type Capabilities struct {
	// HasObserver reports whether the host's viewport-observation
	// primitive is available.
	HasObserver bool

	// ReducedMotion reports whether the user asked for reduced motion.
	// When set, scroll-linked effects are disabled and reveals are
	// immediate.
	ReducedMotion bool
}

// Degraded reports whether the Reveal Engine must skip its dual-path mode
// and mark every target visible at initialization.
func (c Capabilities) Degraded() bool {
	return !c.HasObserver || c.ReducedMotion
}
