// Package bustest provides an in-memory bus connection for tests.
package bustest

import (
	"errors"
	"sync"

	"github.com/godbus/dbus/v5"
)

// Conn records filter and match traffic and can inject signals.
type Conn struct {
	mu sync.Mutex

	// MatchErr, when set, is returned by AddMatch.
	MatchErr error

	matches map[string]int
	filters []chan<- *dbus.Signal
	closed  int
	added   int
	removed int
}

// New returns an open fake connection.
func New() *Conn {
	return &Conn{matches: make(map[string]int)}
}

var ErrClosed = errors.New("bustest: connection closed")

func (c *Conn) AddMatch(rule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed > 0 {
		return ErrClosed
	}
	if c.MatchErr != nil {
		return c.MatchErr
	}
	c.matches[rule]++
	c.added++
	return nil
}

func (c *Conn) RemoveMatch(rule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matches[rule] == 0 {
		return errors.New("bustest: match not installed: " + rule)
	}
	c.matches[rule]--
	if c.matches[rule] == 0 {
		delete(c.matches, rule)
	}
	c.removed++
	return nil
}

func (c *Conn) Signal(ch chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, ch)
}

func (c *Conn) RemoveSignal(ch chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.filters {
		if f == ch {
			c.filters = append(c.filters[:i], c.filters[i+1:]...)
			return
		}
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

// Emit delivers sig to every installed filter without blocking.
func (c *Conn) Emit(sig *dbus.Signal) {
	c.mu.Lock()
	filters := append([]chan<- *dbus.Signal(nil), c.filters...)
	c.mu.Unlock()
	for _, ch := range filters {
		select {
		case ch <- sig:
		default:
		}
	}
}

// Matches returns the number of installed match rules.
func (c *Conn) Matches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.matches {
		n += v
	}
	return n
}

// HasMatch reports whether rule is installed.
func (c *Conn) HasMatch(rule string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches[rule] > 0
}

// Filters returns the number of installed filters.
func (c *Conn) Filters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filters)
}

// Closed returns how many times Close was called.
func (c *Conn) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// MatchCalls returns the number of successful AddMatch and RemoveMatch calls.
func (c *Conn) MatchCalls() (added, removed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.added, c.removed
}

// Signal builds a signal as the bus would deliver it.
func Signal(sender, iface, member string, body ...any) *dbus.Signal {
	return &dbus.Signal{
		Sender: sender,
		Path:   "/",
		Name:   iface + "." + member,
		Body:   body,
	}
}
