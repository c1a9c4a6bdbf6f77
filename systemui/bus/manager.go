package bus

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

var (
	ErrBusUnavailable = errors.New("bus: connection unavailable")
	ErrMatchRejected  = errors.New("bus: match rule rejected")
)

// signalBuffer bounds how many signals may queue per filter before the
// connection starts dropping them.
const signalBuffer = 16

// Handler is invoked for every signal delivered to a subscription.
type Handler func(*dbus.Signal)

// Subscription is one filter plus match rule on one connection.
type Subscription struct {
	conn    Conn
	rule    string
	handler Handler
	ch      chan *dbus.Signal
	active  bool
}

// Rule returns the match rule.
func (s *Subscription) Rule() string { return s.rule }

// Active reports whether the filter and match are still installed.
func (s *Subscription) Active() bool { return s != nil && s.active }

// C returns the delivery channel, or nil once the subscription is inactive.
//
// A nil channel never becomes ready, so the result can go straight into a select.
func (s *Subscription) C() <-chan *dbus.Signal {
	if !s.Active() {
		return nil
	}
	return s.ch
}

// Deliver runs the handler if the subscription is still active.
func (s *Subscription) Deliver(sig *dbus.Signal) {
	if !s.Active() || s.handler == nil || sig == nil {
		return
	}
	s.handler(sig)
}

// Manager installs and removes subscriptions.
//
// It is not safe for concurrent use; a single dispatcher owns it.
type Manager struct {
	log   *slog.Logger
	subs  []*Subscription
	owned []Conn
}

// NewManager returns an empty manager.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

// Dial opens an on-demand connection owned by the manager.
func (m *Manager) Dial(dial func() (Conn, error)) (Conn, error) {
	if dial == nil {
		return nil, ErrBusUnavailable
	}
	c, err := dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBusUnavailable, err)
	}
	if c == nil {
		return nil, ErrBusUnavailable
	}
	m.owned = append(m.owned, c)
	return c, nil
}

// Subscribe installs a filter and match rule on conn.
//
// If the match is rejected the filter is removed again before returning.
func (m *Manager) Subscribe(conn Conn, rule string, h Handler) (*Subscription, error) {
	if conn == nil {
		return nil, ErrBusUnavailable
	}

	s := &Subscription{
		conn:    conn,
		rule:    rule,
		handler: h,
		ch:      make(chan *dbus.Signal, signalBuffer),
	}

	conn.Signal(s.ch)
	if err := conn.AddMatch(rule); err != nil {
		conn.RemoveSignal(s.ch)
		return nil, fmt.Errorf("%w: %s: %v", ErrMatchRejected, rule, err)
	}

	s.active = true
	m.subs = append(m.subs, s)
	m.log.Debug("bus subscribed", "rule", rule)
	return s, nil
}

// Unsubscribe removes the match rule and filter. Inactive subscriptions are ignored.
func (m *Manager) Unsubscribe(s *Subscription) {
	if !s.Active() {
		return
	}
	s.active = false

	if err := s.conn.RemoveMatch(s.rule); err != nil {
		m.log.Warn("bus: remove match failed", "rule", s.Rule(), "err", err)
	}
	s.conn.RemoveSignal(s.ch)

	for i, cur := range m.subs {
		if cur == s {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			break
		}
	}
	m.log.Debug("bus unsubscribed", "rule", s.Rule())
}

// Release unsubscribes everything on conn and closes it if the manager dialed it.
func (m *Manager) Release(conn Conn) {
	if conn == nil {
		return
	}
	for _, s := range m.subscriptionsOn(conn) {
		m.Unsubscribe(s)
	}
	for i, c := range m.owned {
		if c != conn {
			continue
		}
		m.owned = append(m.owned[:i], m.owned[i+1:]...)
		if err := c.Close(); err != nil {
			m.log.Warn("bus: close failed", "err", err)
		}
		return
	}
}

// Owns reports whether conn was dialed by the manager and is still open.
func (m *Manager) Owns(conn Conn) bool {
	for _, c := range m.owned {
		if c == conn {
			return true
		}
	}
	return false
}

// Close removes every subscription and closes every owned connection.
func (m *Manager) Close() {
	for len(m.subs) > 0 {
		m.Unsubscribe(m.subs[len(m.subs)-1])
	}
	for len(m.owned) > 0 {
		m.Release(m.owned[len(m.owned)-1])
	}
}

func (m *Manager) subscriptionsOn(conn Conn) []*Subscription {
	var out []*Subscription
	for _, s := range m.subs {
		if s.conn == conn {
			out = append(out, s)
		}
	}
	return out
}
