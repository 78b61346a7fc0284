package ports

import "github.com/aretw0/kinetic/pkg/domain"

// CancelFunc tears down a subscription. It must be safe to call once; the
// Reveal Engine relies on it to drop its fallback scroll listener as soon
// as the pending set empties.
type CancelFunc func()

// Viewport exposes the host page's geometry. All values are in the same
// unit (host pixels); only vertical geometry matters to the engines.
type Viewport interface {
	// Height returns the current viewport height.
	Height() float64

	// ScrollOffset returns the current scroll position. Frame callbacks
	// read this live rather than using a value captured at schedule time.
	ScrollOffset() float64

	// Bounds returns the element's rect relative to the viewport top.
	// The second return is false when the element does not exist.
	Bounds(ref domain.ElementRef) (domain.Rect, bool)

	// Revealables enumerates the elements tagged as revealable, in
	// document order. An empty slice short-circuits the Reveal Engine.
	Revealables() []domain.ElementRef
}

// ScrollSource delivers raw scroll events. Handlers run one at a time;
// subscription teardown happens through the returned cancel.
type ScrollSource interface {
	Subscribe(fn func()) CancelFunc
}

// FrameScheduler defers work to the next display frame. The engines queue
// at most one callback at a time; the scheduler need not deduplicate.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// Observer is the host's viewport-observation primitive for one margin
// configuration. Notifications arrive on the callback given to the factory.
type Observer interface {
	Observe(ref domain.ElementRef)
	Unobserve(ref domain.ElementRef)
}

// ObserverFactory creates observers. ok is false when the primitive is
// unavailable on this host, which degrades the Reveal Engine to marking
// everything visible at t=0.
type ObserverFactory interface {
	NewObserver(margin domain.Margin, onIntersect func(domain.ElementRef)) (o Observer, ok bool)
}

// Preferences exposes user-level motion settings.
type Preferences interface {
	ReducedMotion() bool
}

// RevealSink receives the one-way "mark visible" signal. The engine never
// un-marks; the presentation layer treats the signal uniformly regardless
// of which path produced it.
type RevealSink interface {
	MarkVisible(ref domain.ElementRef)
}

// ScrollSink consumes the Ticker's published state, once per publish.
type ScrollSink interface {
	PublishScroll(state domain.ScrollState)
}

// Surface aggregates everything the engines need from the host page.
type Surface interface {
	Viewport
	ScrollSource
	FrameScheduler
	ObserverFactory
	Preferences
	RevealSink
	ScrollSink
}
