package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventReveal        EventType = "reveal"
	EventScrollPublish EventType = "scroll_publish"
	EventStepEnter     EventType = "step_enter"
	EventStepLeave     EventType = "step_leave"
	EventCompose       EventType = "compose"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RevealEvent records a target's exactly-once visible transition, and which
// detection path won the race.
type RevealEvent struct {
	EventBase
	Ref  ElementRef `json:"ref"`
	Path string     `json:"path"` // "observer", "fallback" or "degraded"
}

// ScrollEvent records one coalesced publish of the scroll state.
type ScrollEvent struct {
	EventBase
	State ScrollState `json:"state"`
}

// StepEvent records entry to or exit from a dialog step.
type StepEvent struct {
	EventBase
	SessionID string `json:"session_id"`
	Step      Step   `json:"step"`
}

// ComposeEvent records the composed outbound message at the terminal step.
type ComposeEvent struct {
	EventBase
	SessionID string  `json:"session_id"`
	Message   Message `json:"message"`
}

// LifecycleHooks defines callbacks for engine observability. Nil members
// are skipped; hooks run synchronously inside the emitting callback.
type LifecycleHooks struct {
	OnReveal        func(context.Context, *RevealEvent)
	OnScrollPublish func(context.Context, *ScrollEvent)
	OnStepEnter     func(context.Context, *StepEvent)
	OnStepLeave     func(context.Context, *StepEvent)
	OnCompose       func(context.Context, *ComposeEvent)
}

// MergeHooks fans one emission out to several hook sets, in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	merged.OnReveal = func(ctx context.Context, e *RevealEvent) {
		for _, h := range hooks {
			if h.OnReveal != nil {
				h.OnReveal(ctx, e)
			}
		}
	}
	merged.OnScrollPublish = func(ctx context.Context, e *ScrollEvent) {
		for _, h := range hooks {
			if h.OnScrollPublish != nil {
				h.OnScrollPublish(ctx, e)
			}
		}
	}
	merged.OnStepEnter = func(ctx context.Context, e *StepEvent) {
		for _, h := range hooks {
			if h.OnStepEnter != nil {
				h.OnStepEnter(ctx, e)
			}
		}
	}
	merged.OnStepLeave = func(ctx context.Context, e *StepEvent) {
		for _, h := range hooks {
			if h.OnStepLeave != nil {
				h.OnStepLeave(ctx, e)
			}
		}
	}
	merged.OnCompose = func(ctx context.Context, e *ComposeEvent) {
		for _, h := range hooks {
			if h.OnCompose != nil {
				h.OnCompose(ctx, e)
			}
		}
	}
	return merged
}
