// Package mailto renders a composed message as a mailto: URL, the outbound
// handoff used by the reference content page. The adapter stops at emitting
// the URL; opening a mail client belongs to the host.
package mailto

import (
	"context"
	"net/url"
	"sync"

	"github.com/aretw0/kinetic/pkg/domain"
)

// URL encodes a message as a mailto: URL.
func URL(msg domain.Message) string {
	q := url.Values{}
	q.Set("subject", msg.Subject)
	q.Set("body", msg.Body)
	u := url.URL{Scheme: "mailto", Opaque: msg.To, RawQuery: q.Encode()}
	return u.String()
}

// Transport implements ports.Transport by building the mailto URL and
// handing it to an opener callback (e.g. the OS "open" handler). A nil
// opener makes the transport a pure emitter: the URL is retained for
// inspection and nothing else happens.
type Transport struct {
	opener func(url string) error

	mu   sync.Mutex
	last string
}

// New creates a transport. opener may be nil.
func New(opener func(url string) error) *Transport {
	return &Transport{opener: opener}
}

// Send implements ports.Transport.
func (t *Transport) Send(ctx context.Context, msg domain.Message) error {
	u := URL(msg)
	t.mu.Lock()
	t.last = u
	t.mu.Unlock()
	if t.opener != nil {
		return t.opener(u)
	}
	return nil
}

// LastURL returns the most recently emitted mailto URL.
func (t *Transport) LastURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
