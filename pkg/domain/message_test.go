package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/kinetic/pkg/domain"
)

func TestCompose(t *testing.T) {
	script := &domain.Script{
		Recipient: "hello@example.com",
		Closing:   "Sent from the site contact form.",
	}
	answers := domain.Answers{
		Work:   "Design",
		Source: "Referral",
		Name:   "Ana",
		Email:  "ana@example.com",
		Note:   "Looking forward to it.",
	}

	msg := domain.Compose(script, answers)

	assert.Equal(t, "hello@example.com", msg.To)
	assert.Equal(t, "Inquiry from Ana (Design)", msg.Subject)
	assert.Contains(t, msg.Body, "Name: Ana\n")
	assert.Contains(t, msg.Body, "Email: ana@example.com\n")
	assert.Contains(t, msg.Body, "Looking for: Design\n")
	assert.Contains(t, msg.Body, "Found you via: Referral\n")
	assert.Contains(t, msg.Body, "Note: Looking forward to it.\n")
	assert.Contains(t, msg.Body, "Sent from the site contact form.")
}

func TestCompose_EmptyNoteOmitted(t *testing.T) {
	script := &domain.Script{Recipient: "hello@example.com"}
	answers := domain.Answers{Work: "Development", Source: "Search", Name: "Bo", Email: "bo@x.dev"}

	msg := domain.Compose(script, answers)

	if strings.Contains(msg.Body, "Note:") {
		t.Errorf("empty note should not produce a Note line, body:\n%s", msg.Body)
	}
}
