package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTypingDelay paces bot turns when the script does not set one.
const DefaultTypingDelay = 600 * time.Millisecond

// Question is one bot prompt with an optional fixed choice set.
type Question struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasOption reports whether value is a member of the question's choice set.
// Questions without options accept any non-empty value.
func (q Question) HasOption(value string) bool {
	if len(q.Options) == 0 {
		return value != ""
	}
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Script defines the content of the inquiry dialog: the greeting, the two
// branching questions, the detail prompt, pacing, and the outbound message
// boilerplate. It is loaded once and never mutated by the state machine.
type Script struct {
	Greeting    string        `json:"greeting" yaml:"greeting"`
	Work        Question      `json:"work" yaml:"work"`
	Source      Question      `json:"source" yaml:"source"`
	DetailsAsk  string        `json:"details_ask" yaml:"details_ask"`
	Summary     string        `json:"summary" yaml:"summary"`
	Recipient   string        `json:"recipient" yaml:"recipient"`
	Closing     string        `json:"closing" yaml:"closing"`
	TypingDelay time.Duration `json:"typing_delay" yaml:"typing_delay"`

	// Metadata allows adapters to carry extensible key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Delay returns the configured typing latency, or the default when unset.
func (s *Script) Delay() time.Duration {
	if s.TypingDelay <= 0 {
		return DefaultTypingDelay
	}
	return s.TypingDelay
}

// Validate checks that the script is logically sound before the dialog
// accepts input. The work and source questions must carry discrete choice
// sets; the recipient address must look deliverable.
func (s *Script) Validate() error {
	if s == nil {
		return fmt.Errorf("script is nil")
	}
	if s.Greeting == "" {
		return fmt.Errorf("script violation: greeting is required")
	}
	if len(s.Work.Options) == 0 {
		return fmt.Errorf("script violation: work question needs at least one option")
	}
	if s.Source.Prompt == "" || len(s.Source.Options) == 0 {
		return fmt.Errorf("script violation: source question needs a prompt and at least one option")
	}
	if s.Recipient == "" {
		return fmt.Errorf("script violation: recipient address is required")
	}
	if !strings.ContainsRune(s.Recipient, '@') {
		return fmt.Errorf("script violation: recipient %q is not an address", s.Recipient)
	}
	return nil
}
