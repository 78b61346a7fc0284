// Package dialog implements the Conversational Form State Machine: a
// strictly linear, asynchronously paced inquiry dialog with branching
// collection steps, synchronous validation gates, and a terminal
// composition step that hands the composed message to the outbound
// transport.
package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Engine drives exactly one session per page view. It is the session's
// only writer: user input advances it, and its own scheduled typing delays
// finish each transition.
type Engine struct {
	script    *domain.Script
	view      ports.DialogView
	clock     ports.Clock
	transport ports.Transport
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mu      sync.Mutex
	session *domain.Session

	// busy is set while a typing chain is in flight. It guarantees no two
	// suspend-then-resume chains ever overlap for one session.
	busy bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Hooks run synchronously
// inside engine turns and must not call back into the engine.
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

// New creates a dormant engine. The script must already be validated; the
// view, clock and transport are required collaborators.
func New(script *domain.Script, view ports.DialogView, clock ports.Clock, transport ports.Transport, opts ...Option) (*Engine, error) {
	if script == nil {
		return nil, domain.ErrNoScript
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("dialog script rejected: %w", err)
	}
	e := &Engine{
		script:    script,
		view:      view,
		clock:     clock,
		transport: transport,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Session returns a snapshot of the active session, or false when the
// dialog has not been started.
func (e *Engine) Session() (domain.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return domain.Session{}, false
	}
	snap := *e.session
	snap.Transcript = append([]domain.Turn(nil), e.session.Transcript...)
	return snap, true
}

// Busy reports whether a typing chain is currently in flight.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Start handles the user's explicit start action: it renders the dialog
// shell, appends one artificial typing turn, then appends the first bot
// question and activates the work-type step.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return domain.ErrSessionBusy
	}

	e.session = domain.NewSession(uuid.NewString())
	e.session.Step = domain.StepStart
	e.view.ShowShell()
	e.emitStepEnter(ctx, domain.StepStart)
	e.logger.Debug("session started", "session_id", e.session.ID)

	e.typeThen(ctx, func(ctx context.Context) {
		e.appendBot(e.greeting())
		e.advance(ctx, domain.StepWorkType)
	})
	return nil
}

// SubmitWork advances WorkType -> Source on a non-empty selection from the
// fixed choice set. An invalid selection is flagged and the transition
// refused; the session stays on the work-type step.
func (e *Engine) SubmitWork(ctx context.Context, choice string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate(domain.StepWorkType); err != nil {
		return err
	}
	if !e.script.Work.HasOption(choice) {
		return e.refuse(domain.FieldWork, "selection required")
	}

	e.session.Answers.Work = choice
	e.appendUser(choice)
	e.view.HideStep(domain.StepWorkType)
	e.emitStepLeave(ctx, domain.StepWorkType)

	e.typeThen(ctx, func(ctx context.Context) {
		e.appendBot(e.script.Source.Prompt)
		e.advance(ctx, domain.StepSource)
	})
	return nil
}

// ChooseSource advances Source -> Details on a discrete choice, and
// schedules an auto-focus of the first detail field once the step is
// visible.
func (e *Engine) ChooseSource(ctx context.Context, choice string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate(domain.StepSource); err != nil {
		return err
	}
	if !e.script.Source.HasOption(choice) {
		return e.refuse(domain.FieldSource, "selection required")
	}

	e.session.Answers.Source = choice
	e.appendUser(choice)
	e.view.HideStep(domain.StepSource)
	e.emitStepLeave(ctx, domain.StepSource)

	e.typeThen(ctx, func(ctx context.Context) {
		e.appendBot(e.script.DetailsAsk)
		e.advance(ctx, domain.StepDetails)
		e.view.Focus(domain.FieldName)
	})
	return nil
}

// SubmitDetails advances Details -> Success. Both fields must already be
// valid before any commit happens: a failing field is flagged and focused,
// and no partial state is written. On success the combined user entry is
// appended, the terminal summary replaces the closing bot turn, and the
// composed message is handed to the transport.
func (e *Engine) SubmitDetails(ctx context.Context, name, email, note string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate(domain.StepDetails); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	note = strings.TrimSpace(note)

	if name == "" {
		return e.refuse(domain.FieldName, "name required")
	}
	if !strings.ContainsRune(email, '@') {
		return e.refuse(domain.FieldEmail, "not an address")
	}

	e.session.Answers.Name = name
	e.session.Answers.Email = email
	e.session.Answers.Note = note

	entry := fmt.Sprintf("%s (%s)", name, email)
	if note != "" {
		entry += "\n" + note
	}
	e.appendUser(entry)

	e.view.HideStep(domain.StepDetails)
	e.emitStepLeave(ctx, domain.StepDetails)

	e.session.Step = domain.StepSuccess
	e.emitStepEnter(ctx, domain.StepSuccess)

	msg := domain.Compose(e.script, e.session.Answers)
	e.view.ShowSummary(msg)
	e.emitCompose(ctx, msg)

	// Transport failure has no representation in the core: the contract
	// ends at emitting the composed payload.
	if e.transport != nil {
		if err := e.transport.Send(ctx, msg); err != nil {
			e.logger.Warn("outbound handoff failed", "err", err, "session_id", e.session.ID)
		}
	}
	e.logger.Debug("session complete", "session_id", e.session.ID)
	return nil
}

// gate enforces the linear progression guards shared by every submission.
// Callers hold e.mu.
func (e *Engine) gate(step domain.Step) error {
	switch {
	case e.session == nil:
		return domain.ErrSessionNotStarted
	case e.session.Terminal():
		return domain.ErrSessionComplete
	case e.busy:
		return domain.ErrSessionBusy
	case e.session.Step != step:
		return domain.ErrOutOfStep
	}
	return nil
}

// refuse signals a recoverable validation failure: flag, focus, no turn
// appended, no transition.
func (e *Engine) refuse(field domain.Field, reason string) error {
	e.view.FlagInvalid(field)
	e.view.Focus(field)
	return &domain.ValidationError{Field: field, Reason: reason}
}

// typeThen runs fn after the script's typing latency, showing the typing
// indicator in between. The busy flag stays set for the whole chain, so a
// bot turn always renders strictly after the preceding user turn and its
// delay, never reordered by a fast answer.
func (e *Engine) typeThen(ctx context.Context, fn func(context.Context)) {
	e.busy = true
	e.view.SetTyping(true)
	e.clock.AfterFunc(e.script.Delay(), func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.view.SetTyping(false)
		fn(ctx)
		e.busy = false
	})
}

// advance moves the session to the next step and activates its input
// surface. Callers hold e.mu.
func (e *Engine) advance(ctx context.Context, step domain.Step) {
	e.session.Step = step
	e.view.ActivateStep(step)
	e.emitStepEnter(ctx, step)
}

func (e *Engine) greeting() string {
	if e.script.Greeting == e.script.Work.Prompt || e.script.Work.Prompt == "" {
		return e.script.Greeting
	}
	return e.script.Greeting + "\n" + e.script.Work.Prompt
}

func (e *Engine) appendBot(text string) {
	e.session.Append(domain.ActorBot, text, e.clock.Now())
	e.view.AppendTurn(e.session.Transcript[len(e.session.Transcript)-1])
}

func (e *Engine) appendUser(text string) {
	e.session.Append(domain.ActorUser, text, e.clock.Now())
	e.view.AppendTurn(e.session.Transcript[len(e.session.Transcript)-1])
}

func (e *Engine) emitStepEnter(ctx context.Context, step domain.Step) {
	if e.hooks.OnStepEnter != nil {
		e.hooks.OnStepEnter(ctx, &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepEnter},
			SessionID: e.session.ID,
			Step:      step,
		})
	}
}

func (e *Engine) emitStepLeave(ctx context.Context, step domain.Step) {
	if e.hooks.OnStepLeave != nil {
		e.hooks.OnStepLeave(ctx, &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepLeave},
			SessionID: e.session.ID,
			Step:      step,
		})
	}
}

func (e *Engine) emitCompose(ctx context.Context, msg domain.Message) {
	if e.hooks.OnCompose != nil {
		e.hooks.OnCompose(ctx, &domain.ComposeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCompose},
			SessionID: e.session.ID,
			Message:   msg,
		})
	}
}
