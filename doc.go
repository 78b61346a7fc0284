/*
Package kinetic renders motion-driven presentation behavior for a content
page: elements revealed as they scroll into view, a scroll-position-linked
hero effect, and a guided multi-step inquiry dialog that composes an
outbound message.

It is built as three event-driven engines sharing one pattern (state
transition under performance and ordering constraints) behind a hexagonal
boundary. The host page is abstracted as a Surface port, so the same
engines drive a real page, a terminal simulation or an HTTP demo.

# Engines

  - Reveal: dual-path visibility detection. An observer primitive is the
    primary mechanism; a frame-coalesced polling fallback backstops it.
    Both converge on an exactly-once visible transition per target.
  - Ticker: coalesces scroll bursts into at most one published state per
    display frame, never dropping the final position of a burst.
  - Dialog: a strictly linear conversational form with typing latency
    between bot turns, synchronous validation gates, and a terminal step
    that hands a composed message to the outbound transport.

# Usage

	page, err := kinetic.New(surface,
		kinetic.WithScript(memory.NewScriptSource(memory.DefaultScript())),
		kinetic.WithDialogView(view),
		kinetic.WithTransport(mailto.New(nil)),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := page.Init(ctx); err != nil {
		log.Fatal(err)
	}

	// The reveal engine and ticker now run off the surface's events.
	// The dialog waits for the user's start action:
	if d := page.Dialog(); d != nil {
		_ = d.Start(ctx)
	}

All state is transient and scoped to a single page view: there is no
persistence across page loads or sessions.
*/
package kinetic
