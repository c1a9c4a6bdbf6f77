// Package bus manages message filters and match rules on bus connections.
//
// A filter and its match rule are installed and removed as one unit. The
// manager tracks which connections it dialed itself and closes only those.
package bus

import (
	"strings"

	"github.com/godbus/dbus/v5"
)

// Conn is the subset of a bus connection the manager needs.
type Conn interface {
	AddMatch(rule string) error
	RemoveMatch(rule string) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
	Close() error
}

type busConn struct {
	*dbus.Conn
}

// Wrap adapts a godbus connection.
func Wrap(c *dbus.Conn) Conn {
	return busConn{Conn: c}
}

func (c busConn) AddMatch(rule string) error {
	return c.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err
}

func (c busConn) RemoveMatch(rule string) error {
	return c.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule).Err
}

// DialSession opens a private session bus connection.
func DialSession() (Conn, error) {
	c, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, err
	}
	if err := c.Auth(nil); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.Hello(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return Wrap(c), nil
}

// SplitName splits a signal name into interface and member.
func SplitName(sig *dbus.Signal) (iface, member string) {
	if sig == nil {
		return "", ""
	}
	i := strings.LastIndexByte(sig.Name, '.')
	if i < 0 {
		return "", sig.Name
	}
	return sig.Name[:i], sig.Name[i+1:]
}

// Matches reports whether sig carries iface.member, compared case-insensitively.
//
// Signals without a sender are never matched.
func Matches(sig *dbus.Signal, iface, member string) bool {
	if sig == nil || sig.Sender == "" {
		return false
	}
	i, m := SplitName(sig)
	if i == "" || m == "" {
		return false
	}
	return strings.EqualFold(i, iface) && strings.EqualFold(m, member)
}
