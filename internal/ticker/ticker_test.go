package ticker_test

import (
	"context"
	"testing"

	"github.com/aretw0/kinetic/internal/ticker"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

func TestInitialPublish(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement(ticker.DefaultHeroRef, 0, 600, false)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true})
	defer tk.Stop()

	state, ok := page.LastPublished()
	if !ok {
		t.Fatal("start should publish one initial state")
	}
	if state.Offset != 0 {
		t.Errorf("initial offset = %v, want 0", state.Offset)
	}
	if state.Hero == nil {
		t.Fatal("hero effect should be present at rest")
	}
	if state.Hero.Opacity != 1 || state.Hero.TranslateY != 0 {
		t.Errorf("hero at rest = %+v, want opacity 1, translate 0", state.Hero)
	}
}

func TestCoalescing_BurstToOnePublish(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement(ticker.DefaultHeroRef, 0, 600, false)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true})
	defer tk.Stop()

	before := len(page.Published())

	// Ten raw scroll events land between two display frames.
	for i := 1; i <= 10; i++ {
		page.Scroll(float64(i * 30))
	}
	if got := page.PendingFrames(); got != 1 {
		t.Fatalf("expected one queued frame update, got %d", got)
	}
	page.StepFrame()

	published := page.Published()
	if got := len(published) - before; got != 1 {
		t.Fatalf("expected exactly one publish for the burst, got %d", got)
	}
	// The frame callback reads the live offset: the burst's final
	// position, not the one current when the frame was queued.
	if last := published[len(published)-1]; last.Offset != 300 {
		t.Errorf("published offset = %v, want 300", last.Offset)
	}
}

func TestHeroEffect_Thresholds(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement(ticker.DefaultHeroRef, 0, 600, false)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true})
	defer tk.Stop()

	scrollTo := func(offset float64) domain.ScrollState {
		t.Helper()
		page.Scroll(offset)
		page.StepFrame()
		state, ok := page.LastPublished()
		if !ok {
			t.Fatal("no state published")
		}
		return state
	}

	mid := scrollTo(240)
	if mid.Hero == nil {
		t.Fatal("hero effect missing below one viewport height")
	}
	if mid.Hero.Opacity != 0.5 {
		t.Errorf("opacity at 240/600 = %v, want 0.5", mid.Hero.Opacity)
	}
	if mid.Hero.TranslateY != 96 {
		t.Errorf("translate at 240 = %v, want 96", mid.Hero.TranslateY)
	}

	// At 80% of the viewport height the hero is fully transparent but the
	// effect is still derived.
	faded := scrollTo(480)
	if faded.Hero == nil || faded.Hero.Opacity != 0 {
		t.Errorf("hero at the fade boundary = %+v, want present with opacity 0", faded.Hero)
	}

	// Past one viewport height the hero is out of frame: no effect at all.
	gone := scrollTo(700)
	if gone.Hero != nil {
		t.Errorf("hero past one viewport height = %+v, want nil", gone.Hero)
	}
}

func TestNoHeroElement(t *testing.T) {
	page := sim.NewPage(600)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true})
	defer tk.Stop()

	page.Scroll(100)
	page.StepFrame()

	state, ok := page.LastPublished()
	if !ok {
		t.Fatal("offset publishing must continue without a hero")
	}
	if state.Offset != 100 {
		t.Errorf("offset = %v, want 100", state.Offset)
	}
	if state.Hero != nil {
		t.Errorf("hero effect should be absent, got %+v", state.Hero)
	}
}

func TestReducedMotion_NoWork(t *testing.T) {
	page := sim.NewPage(600)
	page.AddElement(ticker.DefaultHeroRef, 0, 600, false)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true, ReducedMotion: true})

	if got := page.SubscriberCount(); got != 0 {
		t.Errorf("reduced motion must not attach a scroll listener, got %d", got)
	}
	if _, ok := page.LastPublished(); ok {
		t.Error("reduced motion must not publish scroll state")
	}
}

func TestStop_RemovesSubscription(t *testing.T) {
	page := sim.NewPage(600)

	tk := ticker.New(page)
	tk.Start(context.Background(), domain.Capabilities{HasObserver: true})
	if got := page.SubscriberCount(); got != 1 {
		t.Fatalf("expected one subscription after start, got %d", got)
	}

	tk.Stop()
	if got := page.SubscriberCount(); got != 0 {
		t.Errorf("expected no subscriptions after stop, got %d", got)
	}
}
