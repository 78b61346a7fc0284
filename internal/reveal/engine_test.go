package reveal_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/kinetic/internal/reveal"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

// recorder collects reveal events in delivery order.
type recorder struct {
	mu    sync.Mutex
	paths map[domain.ElementRef][]string
}

func newRecorder() *recorder {
	return &recorder{paths: make(map[domain.ElementRef][]string)}
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReveal: func(_ context.Context, e *domain.RevealEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.paths[e.Ref] = append(r.paths[e.Ref], e.Path)
		},
	}
}

func (r *recorder) pathsFor(ref domain.ElementRef) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[ref]
}

func fullCaps() domain.Capabilities {
	return domain.Capabilities{HasObserver: true}
}

func TestObserverPath_InitialAndScrolled(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("above", 100, 200, true)
	page.AddElement("below", 2000, 200, true)

	rec := newRecorder()
	engine := reveal.New(page, reveal.WithLifecycleHooks(rec.hooks()))
	engine.Start(context.Background(), fullCaps())

	// The on-screen element resolves from the observer's initial delivery.
	if !page.Visible("above") {
		t.Fatal("on-screen element should be revealed at start")
	}
	if page.Visible("below") {
		t.Fatal("off-screen element should still be pending")
	}

	page.Scroll(1800)
	if !page.Visible("below") {
		t.Fatal("scrolled-into-view element should be revealed")
	}

	if got := rec.pathsFor("below"); len(got) != 1 || got[0] != reveal.PathObserver {
		t.Errorf("expected one observer reveal for 'below', got %v", got)
	}
	if remaining := engine.Pending(); len(remaining) != 0 {
		t.Errorf("expected empty pending set, got %v", remaining)
	}
}

func TestObserverMargin_PreTriggers(t *testing.T) {
	page := sim.NewPage(600)
	// Half a viewport below the fold: inside the expanded entry band,
	// outside the plain [0, height] window.
	page.AddElement("near", 800, 100, true)

	engine := reveal.New(page)
	engine.Start(context.Background(), fullCaps())

	if !page.Visible("near") {
		t.Error("element within the entry margin should pre-trigger")
	}
}

func TestExactlyOnce_AcrossPaths(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("a", 100, 100, true)
	page.AddElement("b", 1000, 100, true)

	rec := newRecorder()
	engine := reveal.New(page, reveal.WithLifecycleHooks(rec.hooks()))
	engine.Start(context.Background(), fullCaps())

	// Redundant notifications: repeated scrolls keep both paths firing,
	// and each frame runs the fallback sweep over whatever is pending.
	for i := 0; i < 5; i++ {
		page.Scroll(700)
		page.StepFrame()
	}

	for _, ref := range []domain.ElementRef{"a", "b"} {
		if got := rec.pathsFor(ref); len(got) != 1 {
			t.Errorf("element %s revealed %d times, want exactly once (%v)", ref, len(got), got)
		}
	}
	if page.VisibleCount() != 2 {
		t.Errorf("expected 2 visible elements, got %d", page.VisibleCount())
	}
}

func TestFallback_CatchesMissedDetections(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("section", 1000, 200, true)
	page.SetObserverSilent(true)

	rec := newRecorder()
	engine := reveal.New(page, reveal.WithLifecycleHooks(rec.hooks()))
	engine.Start(context.Background(), fullCaps())

	if page.Visible("section") {
		t.Fatal("element below the fold should be pending")
	}

	// One scroll burst, one frame: the coalesced geometry check runs.
	page.Scroll(900)
	page.StepFrame()

	if !page.Visible("section") {
		t.Fatal("fallback should reveal the element the observer missed")
	}
	if got := rec.pathsFor("section"); len(got) != 1 || got[0] != reveal.PathFallback {
		t.Errorf("expected one fallback reveal, got %v", got)
	}
}

func TestFallback_InitialSweep(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("hero-copy", 50, 100, true)
	page.SetObserverSilent(true)

	engine := reveal.New(page)
	engine.Start(context.Background(), fullCaps())

	// Content already on screen must not wait for the first scroll.
	if !page.Visible("hero-copy") {
		t.Error("initial sweep should reveal on-screen content")
	}
}

func TestFallback_CoalescesScrollBursts(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("far", 5000, 200, true)
	page.SetObserverSilent(true)

	reveal.New(page).Start(context.Background(), fullCaps())

	// A burst of scroll events between frames queues exactly one check.
	for i := 0; i < 10; i++ {
		page.Scroll(float64(100 + i*10))
	}
	if got := page.PendingFrames(); got != 1 {
		t.Errorf("expected 1 queued frame callback, got %d", got)
	}
	page.StepFrame()
	if got := page.PendingFrames(); got != 0 {
		t.Errorf("expected no queued callbacks after the frame, got %d", got)
	}
}

func TestTeardown_WhenPendingEmpties(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("one", 1000, 100, true)
	page.AddElement("two", 1500, 100, true)
	page.SetObserverSilent(true)

	engine := reveal.New(page)
	engine.Start(context.Background(), fullCaps())

	if got := page.SubscriberCount(); got != 1 {
		t.Fatalf("expected the fallback scroll subscription, got %d", got)
	}

	page.Scroll(700)
	page.StepFrame()
	if got := page.SubscriberCount(); got != 1 {
		t.Fatalf("subscription must survive while targets remain, got %d", got)
	}

	page.Scroll(1100)
	page.StepFrame()

	if got := page.SubscriberCount(); got != 0 {
		t.Errorf("subscription should be removed once the pending set empties, got %d", got)
	}
	if remaining := engine.Pending(); len(remaining) != 0 {
		t.Errorf("expected empty pending set, got %v", remaining)
	}
}

func TestDegraded_NoObserver(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("a", 100, 100, true)
	page.AddElement("b", 5000, 100, true)

	rec := newRecorder()
	engine := reveal.New(page, reveal.WithLifecycleHooks(rec.hooks()))
	engine.Start(context.Background(), domain.Capabilities{HasObserver: false})

	// Everything is revealed immediately, including content far below the
	// fold, and no scroll subscription is ever attached.
	if page.VisibleCount() != 2 {
		t.Fatalf("expected all elements visible, got %d", page.VisibleCount())
	}
	if got := page.SubscriberCount(); got != 0 {
		t.Errorf("degraded mode must not subscribe to scroll, got %d", got)
	}
	if got := rec.pathsFor("b"); len(got) != 1 || got[0] != reveal.PathDegraded {
		t.Errorf("expected one degraded reveal, got %v", got)
	}
	if remaining := engine.Pending(); len(remaining) != 0 {
		t.Errorf("expected empty pending set, got %v", remaining)
	}
}

func TestDegraded_ReducedMotion(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("a", 5000, 100, true)

	reveal.New(page).Start(context.Background(), domain.Capabilities{HasObserver: true, ReducedMotion: true})

	if !page.Visible("a") {
		t.Error("reduced motion should reveal everything immediately")
	}
}

func TestNoTargets_NoOp(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement("hero", 0, 600, false) // not revealable

	reveal.New(page).Start(context.Background(), fullCaps())

	if got := page.SubscriberCount(); got != 0 {
		t.Errorf("no targets means nothing to wire, got %d subscriptions", got)
	}
}
