package splashscreen

import (
	"strings"

	"github.com/godbus/dbus/v5"

	"splashscreen/systemui/bus"
	"splashscreen/systemui/proto"
)

type readinessState uint8

const (
	watching readinessState = iota
	satisfied
)

// Readiness tracks whether a bus name has been seen changing owner.
//
// The transition Watching -> Satisfied happens at most once.
type Readiness struct {
	name  string
	state readinessState
}

func NewReadiness(name string) *Readiness {
	return &Readiness{name: name}
}

// Ready reports whether the tracked name has been observed.
func (r *Readiness) Ready() bool {
	return r != nil && r.state == satisfied
}

// Observe consumes one NameOwnerChanged signal and reports whether it caused
// the transition to Satisfied.
func (r *Readiness) Observe(sig *dbus.Signal) bool {
	if r == nil || r.state == satisfied {
		return false
	}
	if !bus.Matches(sig, proto.DBusInterface, proto.DBusNameOwnerChanged) {
		return false
	}
	if len(sig.Body) == 0 {
		return false
	}
	name, ok := sig.Body[0].(string)
	if !ok || !strings.EqualFold(name, r.name) {
		return false
	}
	r.state = satisfied
	return true
}
