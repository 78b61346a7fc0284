package kinetic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/kinetic/internal/dialog"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/internal/probe"
	"github.com/aretw0/kinetic/internal/reveal"
	"github.com/aretw0/kinetic/internal/ticker"
	"github.com/aretw0/kinetic/pkg/adapters/wallclock"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Page is the high-level entry point for the Kinetic library. It wires the
// Capability Probe, the Reveal Engine, the Ticker and the Dialog around one
// host surface, in the page's single-pass initialization order.
type Page struct {
	surface   ports.Surface
	scripts   ports.ScriptLoader
	view      ports.DialogView
	transport ports.Transport
	clock     ports.Clock
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	heroRef domain.ElementRef
	margin  domain.Margin

	caps   domain.Capabilities
	script *domain.Script
	reveal *reveal.Engine
	ticker *ticker.Ticker
	dialog *dialog.Engine
}

// Option defines a functional option for configuring the Page.
type Option func(*Page)

// WithLifecycleHooks registers observability hooks for all engines.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Page) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		p.logger = logger
	}
}

// WithScript injects the dialog script source. Without one the dialog stays
// disabled and the rest of the page works normally.
func WithScript(loader ports.ScriptLoader) Option {
	return func(p *Page) {
		p.scripts = loader
	}
}

// WithDialogView injects the dialog's presentation side. Required for the
// dialog to be enabled.
func WithDialogView(view ports.DialogView) Option {
	return func(p *Page) {
		p.view = view
	}
}

// WithTransport injects the outbound message collaborator.
func WithTransport(t ports.Transport) Option {
	return func(p *Page) {
		p.transport = t
	}
}

// WithClock overrides the dialog's clock (default: wall time).
func WithClock(c ports.Clock) Option {
	return func(p *Page) {
		p.clock = c
	}
}

// WithHeroElement overrides the hero panel element consulted by the Ticker.
func WithHeroElement(ref domain.ElementRef) Option {
	return func(p *Page) {
		p.heroRef = ref
	}
}

// WithRevealMargin overrides the observer path's entry margin.
func WithRevealMargin(m domain.Margin) Option {
	return func(p *Page) {
		p.margin = m
	}
}

// New assembles a Page around a host surface. Nothing attaches until Init.
func New(surface ports.Surface, opts ...Option) (*Page, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	p := &Page{
		surface: surface,
		clock:   wallclock.New(),
		logger:  logging.NewNop(),
		heroRef: ticker.DefaultHeroRef,
		margin:  domain.DefaultObserverMargin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Init runs the single-pass initialization sequence: the probe runs once,
// the Reveal Engine and Ticker start concurrently for the page lifetime,
// and the dialog is constructed dormant, waiting for the user's start
// action. Absence conditions (no revealables, no hero, no script or view)
// short-circuit the corresponding component with no error.
func (p *Page) Init(ctx context.Context) error {
	p.caps = probe.Detect(p.surface)
	p.logger.Debug("capabilities probed",
		"has_observer", p.caps.HasObserver,
		"reduced_motion", p.caps.ReducedMotion,
	)

	p.reveal = reveal.New(p.surface,
		reveal.WithMargin(p.margin),
		reveal.WithLifecycleHooks(p.hooks),
		reveal.WithLogger(p.logger),
	)
	p.reveal.Start(ctx, p.caps)

	p.ticker = ticker.New(p.surface,
		ticker.WithHero(p.heroRef),
		ticker.WithLifecycleHooks(p.hooks),
		ticker.WithLogger(p.logger),
	)
	p.ticker.Start(ctx, p.caps)

	if p.scripts != nil && p.view != nil {
		script, err := p.scripts.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load dialog script: %w", err)
		}
		p.script = script
		p.dialog, err = dialog.New(script, p.view, p.clock, p.transport,
			dialog.WithLifecycleHooks(p.hooks),
			dialog.WithLogger(p.logger),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Capabilities returns the probe's output. Valid after Init.
func (p *Page) Capabilities() domain.Capabilities {
	return p.caps
}

// Dialog returns the conversational form engine, or nil when no script and
// view were configured.
func (p *Page) Dialog() *dialog.Engine {
	return p.dialog
}

// Script returns the loaded dialog script, or nil. Valid after Init.
func (p *Page) Script() *domain.Script {
	return p.script
}

// PendingReveals returns the targets not yet marked visible.
func (p *Page) PendingReveals() []domain.ElementRef {
	if p.reveal == nil {
		return nil
	}
	return p.reveal.Pending()
}

// Teardown releases the page's remaining subscriptions. Reveal
// subscriptions are already gone once every target resolved.
func (p *Page) Teardown() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
