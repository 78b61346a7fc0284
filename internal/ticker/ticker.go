// Package ticker implements the Scroll-Linked Update Ticker: it coalesces
// high-frequency scroll events into at most one published state per display
// frame, without ever dropping the final position of a burst.
package ticker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// DefaultHeroRef is the element consulted for the hero panel unless
// overridden. A missing element simply disables the derived effect.
const DefaultHeroRef = domain.ElementRef("hero")

// Ticker owns the process-wide ScrollState: it is the state's only writer.
type Ticker struct {
	surface ports.Surface
	heroRef domain.ElementRef
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	// inFlight gates scheduling: one pending frame update at a time.
	inFlight atomic.Bool

	heroPresent bool
	cancel      ports.CancelFunc
}

// Option configures the Ticker.
type Option func(*Ticker)

// WithHero overrides the hero panel element.
func WithHero(ref domain.ElementRef) Option {
	return func(t *Ticker) {
		t.heroRef = ref
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Ticker) {
		t.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Ticker) {
		t.logger = logger
	}
}

// New creates a Ticker. Nothing is attached until Start.
func New(surface ports.Surface, opts ...Option) *Ticker {
	t := &Ticker{
		surface: surface,
		heroRef: DefaultHeroRef,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start subscribes to scroll events and publishes one initial state.
// Scroll-linked effects are motion effects: with reduced motion requested
// the Ticker performs no work and attaches no listener.
func (t *Ticker) Start(ctx context.Context, caps domain.Capabilities) {
	if caps.ReducedMotion {
		return
	}
	_, t.heroPresent = t.surface.Bounds(t.heroRef)
	t.cancel = t.surface.Subscribe(func() { t.schedule(ctx) })
	t.publish(ctx)
}

// Stop removes the scroll subscription at page teardown.
func (t *Ticker) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// schedule queues a frame update unless one is already in flight. The
// frame callback reads the live offset, so motion between scheduling and
// the frame firing is absorbed rather than lost.
func (t *Ticker) schedule(ctx context.Context) {
	if !t.inFlight.CompareAndSwap(false, true) {
		return
	}
	t.surface.RequestFrame(func() {
		t.publish(ctx)
		t.inFlight.Store(false)
	})
}

func (t *Ticker) publish(ctx context.Context) {
	offset := t.surface.ScrollOffset()
	height := t.surface.Height()

	state := domain.ScrollState{Offset: offset}
	if t.heroPresent && offset < height {
		hero := domain.DeriveHero(offset, height)
		state.Hero = &hero
	}

	t.surface.PublishScroll(state)

	if t.hooks.OnScrollPublish != nil {
		t.hooks.OnScrollPublish(ctx, &domain.ScrollEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScrollPublish},
			State:     state,
		})
	}
}
