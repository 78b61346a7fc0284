package sim

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/kinetic/pkg/ports"
)

// Clock is a manual clock for deterministic typing-delay tests. Time only
// moves through Advance.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	timers map[int]*timer
}

type timer struct {
	due time.Time
	fn  func()
}

// NewClock creates a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		timers: make(map[int]*timer),
	}
}

// Now implements ports.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc implements ports.Clock.
func (c *Clock) AfterFunc(d time.Duration, fn func()) ports.CancelFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.timers[id] = &timer{due: c.now.Add(d), fn: fn}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.timers, id)
	}
}

// Advance moves time forward and fires due timers in deadline order.
// Callbacks run outside the clock lock, one at a time.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	deadline := c.now
	var due []*timer
	for id, t := range c.timers {
		if !t.due.After(deadline) {
			due = append(due, t)
			delete(c.timers, id)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		t.fn()
	}
}

// PendingTimers reports the number of unfired timers.
func (c *Clock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
