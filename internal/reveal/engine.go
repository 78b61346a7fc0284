// Package reveal implements the Viewport Reveal Engine: dual-path
// visibility detection with an event-driven observer as primary mechanism
// and a frame-coalesced polling fallback as a correctness backstop. Both
// paths converge on an exactly-once visible transition per target.
package reveal

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Detection path labels reported through lifecycle hooks.
const (
	PathObserver = "observer"
	PathFallback = "fallback"
	PathDegraded = "degraded"
)

// Engine tracks the revealable targets of one page view.
type Engine struct {
	surface ports.Surface
	margin  domain.Margin
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[domain.ElementRef]*domain.Target
	order   []domain.ElementRef

	observer     ports.Observer
	cancelScroll ports.CancelFunc

	// checkQueued gates the fallback: at most one geometry check may be
	// waiting on the frame scheduler at any time.
	checkQueued atomic.Bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithMargin overrides the observer path's asymmetric entry margin. The
// fallback path's plain [0, viewportHeight] test is deliberately separate
// and unaffected.
func WithMargin(m domain.Margin) Option {
	return func(e *Engine) {
		e.margin = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine for the surface's revealable set. It attaches
// nothing until Start.
func New(surface ports.Surface, opts ...Option) *Engine {
	e := &Engine{
		surface: surface,
		margin:  domain.DefaultObserverMargin,
		pending: make(map[domain.ElementRef]*domain.Target),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, ref := range surface.Revealables() {
		e.pending[ref] = &domain.Target{Ref: ref}
		e.order = append(e.order, ref)
	}
	return e
}

// Start wires both detection paths, or short-circuits to degraded mode.
// With no revealable targets it is a no-op.
func (e *Engine) Start(ctx context.Context, caps domain.Capabilities) {
	if len(e.order) == 0 {
		return
	}

	if caps.Degraded() {
		e.revealAll(ctx)
		return
	}

	observer, ok := e.surface.NewObserver(e.margin, func(ref domain.ElementRef) {
		e.resolve(ctx, ref, PathObserver)
	})
	if !ok {
		// The probe said otherwise, but the factory has final say.
		e.revealAll(ctx)
		return
	}

	e.mu.Lock()
	e.observer = observer
	e.mu.Unlock()

	// Observe outside the lock: hosts may deliver the first intersection
	// synchronously, which re-enters resolve.
	for _, ref := range e.order {
		observer.Observe(ref)
	}

	e.mu.Lock()
	live := len(e.pending) > 0
	if live {
		e.cancelScroll = e.surface.Subscribe(e.scheduleCheck(ctx))
	}
	e.mu.Unlock()

	// The fallback runs once immediately so content already on screen is
	// never left waiting for the first scroll.
	if live {
		e.checkPending(ctx)
	}
}

// Pending returns the refs not yet resolved, in document order.
func (e *Engine) Pending() []domain.ElementRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.ElementRef, 0, len(e.pending))
	for _, ref := range e.order {
		if _, ok := e.pending[ref]; ok {
			out = append(out, ref)
		}
	}
	return out
}

// revealAll marks every target visible at t=0 with identical downstream
// effect to a detected reveal.
func (e *Engine) revealAll(ctx context.Context) {
	for _, ref := range e.order {
		e.resolve(ctx, ref, PathDegraded)
	}
}

// scheduleCheck returns the raw scroll handler: it queues at most one
// geometry check per display frame.
func (e *Engine) scheduleCheck(ctx context.Context) func() {
	return func() {
		if !e.checkQueued.CompareAndSwap(false, true) {
			return
		}
		e.surface.RequestFrame(func() {
			e.checkQueued.Store(false)
			e.checkPending(ctx)
		})
	}
}

// checkPending is the fallback path's geometry sweep over the still-pending
// set. A target is visible if any part of its box lies within
// [0, viewportHeight].
func (e *Engine) checkPending(ctx context.Context) {
	height := e.surface.Height()
	for _, ref := range e.Pending() {
		rect, ok := e.surface.Bounds(ref)
		if !ok {
			continue
		}
		if rect.Intersects(height) {
			e.resolve(ctx, ref, PathFallback)
		}
	}
}

// resolve commits the exactly-once visible transition. The check-and-set
// under the mutex is the tie-break between the two racing paths; the loser
// finds the target gone and returns without side effects. Resolving also
// de-registers the target from the other path, and tears down the fallback
// scroll subscription once nothing remains pending.
func (e *Engine) resolve(ctx context.Context, ref domain.ElementRef, path string) {
	e.mu.Lock()
	target, ok := e.pending[ref]
	if !ok || target.Visible {
		e.mu.Unlock()
		return
	}
	target.Visible = true
	delete(e.pending, ref)
	observer := e.observer
	var cancel ports.CancelFunc
	if len(e.pending) == 0 {
		cancel = e.cancelScroll
		e.cancelScroll = nil
	}
	e.mu.Unlock()

	if observer != nil {
		observer.Unobserve(ref)
	}
	e.surface.MarkVisible(ref)
	e.logger.Debug("target revealed", "ref", ref, "path", path)

	if e.hooks.OnReveal != nil {
		e.hooks.OnReveal(ctx, &domain.RevealEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReveal},
			Ref:       ref,
			Path:      path,
		})
	}

	if cancel != nil {
		cancel()
		e.logger.Debug("fallback scroll subscription removed")
	}
}
