package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kinetic/pkg/domain"
)

func validScript() *domain.Script {
	return &domain.Script{
		Greeting:  "Hello! What do you need?",
		Work:      domain.Question{Options: []string{"Design", "Development"}},
		Source:    domain.Question{Prompt: "How did you find me?", Options: []string{"Search", "Referral"}},
		Recipient: "hello@example.com",
	}
}

func TestScriptValidate(t *testing.T) {
	require.NoError(t, validScript().Validate())

	t.Run("missing greeting", func(t *testing.T) {
		s := validScript()
		s.Greeting = ""
		assert.Error(t, s.Validate())
	})

	t.Run("work without options", func(t *testing.T) {
		s := validScript()
		s.Work.Options = nil
		assert.Error(t, s.Validate())
	})

	t.Run("source without prompt", func(t *testing.T) {
		s := validScript()
		s.Source.Prompt = ""
		assert.Error(t, s.Validate())
	})

	t.Run("recipient not an address", func(t *testing.T) {
		s := validScript()
		s.Recipient = "not-an-address"
		assert.Error(t, s.Validate())
	})
}

func TestQuestionHasOption(t *testing.T) {
	q := domain.Question{Options: []string{"Design", "Development"}}
	assert.True(t, q.HasOption("Design"))
	assert.False(t, q.HasOption("Painting"))
	assert.False(t, q.HasOption(""))

	// Free-form questions accept anything non-empty.
	free := domain.Question{Prompt: "Say anything"}
	assert.True(t, free.HasOption("whatever"))
	assert.False(t, free.HasOption(""))
}

func TestScriptDelay(t *testing.T) {
	s := validScript()
	assert.Equal(t, domain.DefaultTypingDelay, s.Delay())

	s.TypingDelay = 250 * time.Millisecond
	assert.Equal(t, 250*time.Millisecond, s.Delay())
}
