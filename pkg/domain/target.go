package domain

// ElementRef identifies a presentational unit on the host surface.
// It is opaque to the engines: they only need identity and a geometry query.
type ElementRef string

// Rect describes the vertical extent of an element relative to the viewport
// top. Horizontal geometry is irrelevant to the reveal contract.
type Rect struct {
	Top    float64
	Bottom float64
}

// Intersects reports whether any part of the rect lies within the band
// [0, viewportHeight]. This is the fallback path's visibility test.
func (r Rect) Intersects(viewportHeight float64) bool {
	return r.Bottom >= 0 && r.Top <= viewportHeight
}

// Target is a revealable unit tracked by the Reveal Engine.
// Visible is monotonic: once true it never reverts, and no detection path
// may act on the target again.
type Target struct {
	Ref     ElementRef
	Visible bool
}

// Margin expands (positive) or contracts (negative) the viewport band used
// for intersection testing, expressed as fractions of the viewport height.
// The observer path and the fallback path deliberately keep separate margins.
type Margin struct {
	// Entry extends the bottom edge so reveals pre-trigger before the
	// element reaches the viewport.
	Entry float64
	// Exit shifts the top edge so elements are considered gone slightly
	// late on the way out.
	Exit float64
}

// DefaultObserverMargin pre-triggers roughly half a viewport early on entry
// and lets elements linger slightly past the top edge on exit.
var DefaultObserverMargin = Margin{Entry: 0.5, Exit: 0.1}
