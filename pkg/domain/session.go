package domain

import "time"

// Step identifies the dialog's position in its ordered sequence.
// Progression is strictly forward: no backward transitions, no skipping.
type Step string

const (
	StepIdle     Step = "idle"
	StepStart    Step = "start"
	StepWorkType Step = "work_type"
	StepSource   Step = "source"
	StepDetails  Step = "details"
	StepSuccess  Step = "success"
)

// stepOrder fixes the linear sequence used by Step.Before.
var stepOrder = map[Step]int{
	StepIdle:     0,
	StepStart:    1,
	StepWorkType: 2,
	StepSource:   3,
	StepDetails:  4,
	StepSuccess:  5,
}

// Before reports whether s precedes other in the fixed sequence.
func (s Step) Before(other Step) bool {
	return stepOrder[s] < stepOrder[other]
}

// Actor tags a transcript turn.
type Actor string

const (
	ActorBot  Actor = "bot"
	ActorUser Actor = "user"
)

// Turn is one entry in the append-only dialog transcript.
type Turn struct {
	Actor Actor     `json:"actor"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Field identifies a detail-step input for validation flagging and focus.
type Field string

const (
	FieldWork   Field = "work"
	FieldSource Field = "source"
	FieldName   Field = "name"
	FieldEmail  Field = "email"
	FieldNote   Field = "note"
)

// Answers holds the collected responses, keyed by fixed question. Values are
// empty until answered and written once per key under normal flow.
type Answers struct {
	Work   string `json:"work"`
	Source string `json:"source"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Note   string `json:"note"`
}

// Session is one run of the conversational form, from the user's start
// action to the terminal success step. Exactly one session is active per
// page view; the state machine is its only writer.
type Session struct {
	ID         string
	Step       Step
	Answers    Answers
	Transcript []Turn
}

// NewSession creates a session positioned at the idle step.
func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Step: StepIdle,
	}
}

// Append adds a turn to the transcript. The transcript is never reordered
// or truncated.
func (s *Session) Append(actor Actor, text string, at time.Time) {
	s.Transcript = append(s.Transcript, Turn{Actor: actor, Text: text, At: at})
}

// Terminal reports whether the session has reached the success step and
// ignores all further input.
func (s *Session) Terminal() bool {
	return s.Step == StepSuccess
}
