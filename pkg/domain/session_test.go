package domain_test

import (
	"testing"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
)

func TestStepOrdering(t *testing.T) {
	ordered := []domain.Step{
		domain.StepIdle,
		domain.StepStart,
		domain.StepWorkType,
		domain.StepSource,
		domain.StepDetails,
		domain.StepSuccess,
	}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Before(ordered[i+1]) {
			t.Errorf("expected %s to precede %s", ordered[i], ordered[i+1])
		}
		if ordered[i+1].Before(ordered[i]) {
			t.Errorf("did not expect %s to precede %s", ordered[i+1], ordered[i])
		}
	}
}

func TestSessionTranscript(t *testing.T) {
	s := domain.NewSession("s1")
	if s.Step != domain.StepIdle {
		t.Fatalf("new session should be idle, got %s", s.Step)
	}
	if s.Terminal() {
		t.Fatal("new session should not be terminal")
	}

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Append(domain.ActorBot, "hello", at)
	s.Append(domain.ActorUser, "hi", at.Add(time.Second))

	if len(s.Transcript) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(s.Transcript))
	}
	if s.Transcript[0].Actor != domain.ActorBot || s.Transcript[1].Actor != domain.ActorUser {
		t.Error("transcript order not preserved")
	}

	s.Step = domain.StepSuccess
	if !s.Terminal() {
		t.Error("success step should be terminal")
	}
}

func TestIsValidation(t *testing.T) {
	ve := &domain.ValidationError{Field: domain.FieldEmail, Reason: "not an address"}
	got, ok := domain.IsValidation(ve)
	if !ok || got.Field != domain.FieldEmail {
		t.Fatalf("expected validation error for email, got %v (ok=%v)", got, ok)
	}

	if _, ok := domain.IsValidation(domain.ErrSessionBusy); ok {
		t.Error("sentinel errors are not validation errors")
	}
}
