package sim

import (
	"context"
	"sync"

	"github.com/aretw0/kinetic/pkg/domain"
)

// View is a recording implementation of ports.DialogView. It captures
// everything the state machine tells the presentation layer, for tests and
// for headless surfaces (HTTP, MCP) that expose dialog state on request.
type View struct {
	mu sync.Mutex

	shellShown bool
	typing     bool
	active     map[domain.Step]bool
	flagged    []domain.Field
	focused    []domain.Field
	turns      []domain.Turn
	summary    *domain.Message
}

// NewView creates an empty recording view.
func NewView() *View {
	return &View{active: make(map[domain.Step]bool)}
}

// ShowShell implements ports.DialogView.
func (v *View) ShowShell() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shellShown = true
}

// AppendTurn implements ports.DialogView.
func (v *View) AppendTurn(turn domain.Turn) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.turns = append(v.turns, turn)
}

// SetTyping implements ports.DialogView.
func (v *View) SetTyping(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.typing = active
}

// ActivateStep implements ports.DialogView.
func (v *View) ActivateStep(step domain.Step) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active[step] = true
}

// HideStep implements ports.DialogView.
func (v *View) HideStep(step domain.Step) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active[step] = false
}

// FlagInvalid implements ports.DialogView.
func (v *View) FlagInvalid(field domain.Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flagged = append(v.flagged, field)
}

// Focus implements ports.DialogView.
func (v *View) Focus(field domain.Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = append(v.focused, field)
}

// ShowSummary implements ports.DialogView.
func (v *View) ShowSummary(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summary = &msg
}

// ShellShown reports whether the dialog container was rendered.
func (v *View) ShellShown() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shellShown
}

// Typing reports the current typing indicator state.
func (v *View) Typing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.typing
}

// StepActive reports whether a step's input surface is currently shown.
func (v *View) StepActive(step domain.Step) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active[step]
}

// Flagged returns the fields marked invalid, in order.
func (v *View) Flagged() []domain.Field {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Field(nil), v.flagged...)
}

// Focused returns the focus redirects, in order.
func (v *View) Focused() []domain.Field {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Field(nil), v.focused...)
}

// Turns returns the rendered transcript, in order.
func (v *View) Turns() []domain.Turn {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Turn(nil), v.turns...)
}

// Summary returns the terminal panel content, if shown.
func (v *View) Summary() (domain.Message, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.summary == nil {
		return domain.Message{}, false
	}
	return *v.summary, true
}

// Transport records composed messages instead of delivering them.
type Transport struct {
	mu   sync.Mutex
	sent []domain.Message
}

// NewTransport creates an empty recording transport.
func NewTransport() *Transport {
	return &Transport{}
}

// Send implements ports.Transport.
func (t *Transport) Send(ctx context.Context, msg domain.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, msg)
	return nil
}

// Sent returns every message handed to the transport, in order.
func (t *Transport) Sent() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Message(nil), t.sent...)
}
