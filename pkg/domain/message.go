package domain

import (
	"fmt"
	"strings"
)

// Message is the composed outbound payload handed to the transport
// collaborator once the dialog reaches its terminal step. The core's
// responsibility ends here: delivery, retries and confirmation belong to
// the transport.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Compose builds the outbound message from the script boilerplate and the
// collected answers. Each body line is human-readable; the Note line is
// omitted entirely when the note is empty.
func Compose(script *Script, answers Answers) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", answers.Name)
	fmt.Fprintf(&b, "Email: %s\n", answers.Email)
	fmt.Fprintf(&b, "Looking for: %s\n", answers.Work)
	fmt.Fprintf(&b, "Found you via: %s\n", answers.Source)
	if answers.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", answers.Note)
	}
	if script.Closing != "" {
		fmt.Fprintf(&b, "\n%s\n", script.Closing)
	}

	return Message{
		To:      script.Recipient,
		Subject: fmt.Sprintf("Inquiry from %s (%s)", answers.Name, answers.Work),
		Body:    b.String(),
	}
}
