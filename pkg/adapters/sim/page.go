// Package sim provides a deterministic, in-memory implementation of the
// Kinetic ports: a virtual page with positioned elements, manual scrolling,
// manual display frames and a manual clock. It backs the package tests and
// the terminal/HTTP demos, where no real host surface exists.
package sim

import (
	"sync"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

type element struct {
	ref        domain.ElementRef
	top        float64 // absolute document position
	bottom     float64
	revealable bool
}

// Page is a virtual page surface. The zero value is not usable; construct
// with NewPage.
type Page struct {
	mu sync.Mutex

	height   float64
	offset   float64
	elements []element

	observerAvailable bool
	observerSilent    bool
	reducedMotion     bool

	observers []*observer
	handlers  map[int]func()
	nextSub   int

	frames []func()

	visible   map[domain.ElementRef]bool
	published []domain.ScrollState
}

// NewPage creates a page with the given viewport height.
func NewPage(height float64) *Page {
	return &Page{
		height:            height,
		observerAvailable: true,
		handlers:          make(map[int]func()),
		visible:           make(map[domain.ElementRef]bool),
	}
}

// AddElement places an element at an absolute document position.
func (p *Page) AddElement(ref domain.ElementRef, top, height float64, revealable bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = append(p.elements, element{
		ref:        ref,
		top:        top,
		bottom:     top + height,
		revealable: revealable,
	})
}

// SetObserverAvailable simulates a host without the observation primitive.
func (p *Page) SetObserverAvailable(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observerAvailable = ok
}

// SetObserverSilent keeps the primitive available but suppresses all of its
// notifications, simulating the missed-detection cases the fallback path
// exists for.
func (p *Page) SetObserverSilent(silent bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observerSilent = silent
}

// SetReducedMotion simulates the user's reduced-motion preference.
func (p *Page) SetReducedMotion(reduced bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reducedMotion = reduced
}

// Scroll moves the page to an absolute offset. Observer notifications are
// delivered first, then the raw scroll handlers, mirroring the host's
// event order. Handlers run one at a time.
func (p *Page) Scroll(to float64) {
	p.mu.Lock()
	if to < 0 {
		to = 0
	}
	p.offset = to
	observers := append([]*observer(nil), p.observers...)
	silent := p.observerSilent
	var fns []func()
	for _, h := range p.handlers {
		fns = append(fns, h)
	}
	p.mu.Unlock()

	if !silent {
		for _, o := range observers {
			o.deliver()
		}
	}
	for _, fn := range fns {
		fn()
	}
}

// StepFrame runs every callback queued for the next display frame. New
// callbacks scheduled while running wait for the following frame.
func (p *Page) StepFrame() {
	p.mu.Lock()
	frames := p.frames
	p.frames = nil
	p.mu.Unlock()
	for _, fn := range frames {
		fn()
	}
}

// PendingFrames reports how many callbacks await the next frame.
func (p *Page) PendingFrames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// Height implements ports.Viewport.
func (p *Page) Height() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

// ScrollOffset implements ports.Viewport.
func (p *Page) ScrollOffset() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Bounds implements ports.Viewport.
func (p *Page) Bounds(ref domain.ElementRef) (domain.Rect, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.boundsLocked(ref)
}

func (p *Page) boundsLocked(ref domain.ElementRef) (domain.Rect, bool) {
	for _, el := range p.elements {
		if el.ref == ref {
			return domain.Rect{Top: el.top - p.offset, Bottom: el.bottom - p.offset}, true
		}
	}
	return domain.Rect{}, false
}

// Revealables implements ports.Viewport.
func (p *Page) Revealables() []domain.ElementRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.ElementRef
	for _, el := range p.elements {
		if el.revealable {
			out = append(out, el.ref)
		}
	}
	return out
}

// Subscribe implements ports.ScrollSource.
func (p *Page) Subscribe(fn func()) ports.CancelFunc {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.handlers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

// SubscriberCount reports the number of live scroll subscriptions.
func (p *Page) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers)
}

// RequestFrame implements ports.FrameScheduler.
func (p *Page) RequestFrame(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, fn)
}

// NewObserver implements ports.ObserverFactory. The simulated observer
// delivers its initial intersection on Observe and re-checks on every
// scroll.
func (p *Page) NewObserver(margin domain.Margin, onIntersect func(domain.ElementRef)) (ports.Observer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.observerAvailable {
		return nil, false
	}
	o := &observer{page: p, margin: margin, onIntersect: onIntersect, watched: make(map[domain.ElementRef]bool)}
	p.observers = append(p.observers, o)
	return o, true
}

// ReducedMotion implements ports.Preferences.
func (p *Page) ReducedMotion() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reducedMotion
}

// MarkVisible implements ports.RevealSink.
func (p *Page) MarkVisible(ref domain.ElementRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible[ref] = true
}

// Visible reports whether the presentation layer saw the reveal signal.
func (p *Page) Visible(ref domain.ElementRef) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible[ref]
}

// VisibleCount returns the number of revealed elements.
func (p *Page) VisibleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.visible)
}

// PublishScroll implements ports.ScrollSink.
func (p *Page) PublishScroll(state domain.ScrollState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, state)
}

// Published returns every state the Ticker has published, in order.
func (p *Page) Published() []domain.ScrollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ScrollState(nil), p.published...)
}

// LastPublished returns the most recent published state.
func (p *Page) LastPublished() (domain.ScrollState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.published) == 0 {
		return domain.ScrollState{}, false
	}
	return p.published[len(p.published)-1], true
}

// observer simulates the host observation primitive for one margin.
type observer struct {
	page        *Page
	margin      domain.Margin
	onIntersect func(domain.ElementRef)
	watched     map[domain.ElementRef]bool
}

// Observe implements ports.Observer. The initial intersection check is
// delivered synchronously, like the primitive's first notification.
func (o *observer) Observe(ref domain.ElementRef) {
	o.page.mu.Lock()
	o.watched[ref] = true
	silent := o.page.observerSilent
	hit := o.intersectsLocked(ref)
	o.page.mu.Unlock()
	if hit && !silent {
		o.onIntersect(ref)
	}
}

// Unobserve implements ports.Observer.
func (o *observer) Unobserve(ref domain.ElementRef) {
	o.page.mu.Lock()
	defer o.page.mu.Unlock()
	delete(o.watched, ref)
}

// Watched reports whether the observer still tracks ref.
func (o *observer) Watched(ref domain.ElementRef) bool {
	o.page.mu.Lock()
	defer o.page.mu.Unlock()
	return o.watched[ref]
}

// deliver re-checks every watched element against the expanded band.
func (o *observer) deliver() {
	o.page.mu.Lock()
	var hits []domain.ElementRef
	for ref := range o.watched {
		if o.intersectsLocked(ref) {
			hits = append(hits, ref)
		}
	}
	o.page.mu.Unlock()
	for _, ref := range hits {
		o.onIntersect(ref)
	}
}

// intersectsLocked tests ref against the margin-expanded viewport band:
// the entry margin extends the bottom edge, the exit margin lets elements
// linger past the top.
func (o *observer) intersectsLocked(ref domain.ElementRef) bool {
	rect, ok := o.page.boundsLocked(ref)
	if !ok {
		return false
	}
	h := o.page.height
	return rect.Bottom >= -o.margin.Exit*h && rect.Top <= h*(1+o.margin.Entry)
}
