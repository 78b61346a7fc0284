// Package memory provides an in-memory ScriptLoader, useful for tests and
// for embedding a fixed dialog script without any file dependency.
package memory

import (
	"context"

	"github.com/aretw0/kinetic/pkg/domain"
)

// ScriptSource implements ports.ScriptLoader over a static script.
type ScriptSource struct {
	script *domain.Script
}

// NewScriptSource wraps a script. The loader hands out the same pointer on
// every Load; callers must treat the script as immutable.
func NewScriptSource(script *domain.Script) *ScriptSource {
	return &ScriptSource{script: script}
}

// Load implements ports.ScriptLoader.
func (s *ScriptSource) Load(ctx context.Context) (*domain.Script, error) {
	if s.script == nil {
		return nil, domain.ErrNoScript
	}
	return s.script, nil
}

// DefaultScript returns the reference inquiry script used by the demos and
// the package tests.
func DefaultScript() *domain.Script {
	return &domain.Script{
		Greeting:   "Hey, thanks for stopping by! What kind of work are you looking for?",
		Work:       domain.Question{Options: []string{"Design", "Development", "Branding", "Something else"}},
		Source:     domain.Question{Prompt: "Nice. How did you find me?", Options: []string{"Search", "Referral", "Social media", "Other"}},
		DetailsAsk: "Almost done. Leave your name and email, and a note if you like.",
		Summary:    "Thanks! Your message is ready to send.",
		Recipient:  "hello@example.com",
		Closing:    "Sent from the site contact form.",
	}
}
