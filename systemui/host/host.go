// Package host is a minimal systemui plugin host: a named handler registry
// and its export on the system bus.
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"splashscreen/systemui/proto"
)

var ErrNoHandler = errors.New("host: no handler")

// HandlerFunc serves one request. The reply is an opaque variant placeholder.
type HandlerFunc func(args []proto.Arg) (dbus.Variant, error)

// Registry maps request names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// AddHandler registers fn under name, replacing any previous handler.
func (r *Registry) AddHandler(name string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// RemoveHandler drops the handler for name. Unknown names are ignored.
func (r *Registry) RemoveHandler(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Has reports whether a handler is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name] != nil
}

// Call runs the handler registered for name.
func (r *Registry) Call(name string, args []proto.Arg) (dbus.Variant, error) {
	r.mu.RLock()
	fn := r.handlers[name]
	r.mu.RUnlock()
	if fn == nil {
		return dbus.Variant{}, fmt.Errorf("%w: %s", ErrNoHandler, name)
	}
	return fn(args)
}

// Prefix builds the four host fields that precede every request payload.
func Prefix(service string, path dbus.ObjectPath, iface, method string) []proto.Arg {
	return []proto.Arg{
		{Type: proto.ArgString, Value: service},
		{Type: proto.ArgObjectPath, Value: path},
		{Type: proto.ArgString, Value: iface},
		{Type: proto.ArgString, Value: method},
	}
}
