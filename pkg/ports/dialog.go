package ports

import (
	"context"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
)

// DialogView is the presentation side of the conversational form. The state
// machine drives it; it never drives the state machine back. All methods
// are called from within a single engine turn.
type DialogView interface {
	// ShowShell renders the dialog container on the user's start action.
	ShowShell()

	// AppendTurn adds a rendered turn to the visible transcript.
	AppendTurn(turn domain.Turn)

	// SetTyping toggles the artificial "typing" indicator.
	SetTyping(active bool)

	// ActivateStep makes a step's input surface visible and interactive.
	ActivateStep(step domain.Step)

	// HideStep removes a step's input surface from interaction.
	HideStep(step domain.Step)

	// FlagInvalid marks a field as failing validation.
	FlagInvalid(field domain.Field)

	// Focus redirects input focus to a field.
	Focus(field domain.Field)

	// ShowSummary replaces the closing bot turn with the terminal panel.
	ShowSummary(msg domain.Message)
}

// Transport hands the composed message to the outbound collaborator (for
// the reference page, a mail-composition handoff). The core does not
// represent delivery failure.
type Transport interface {
	Send(ctx context.Context, msg domain.Message) error
}

// ScriptLoader retrieves the dialog script definition.
type ScriptLoader interface {
	Load(ctx context.Context) (*domain.Script, error)
}

// Clock schedules the dialog's typing delays. AfterFunc returns a cancel
// that stops the callback if it has not fired yet.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) CancelFunc
}
