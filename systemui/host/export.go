package host

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"splashscreen/systemui/proto"
)

// Handler serves the systemui request object straight from a Registry.
//
// Request bodies reach the registry undecoded, so arity and types are checked
// by the plugin handler, not by the bus layer. Every other object path falls
// through to godbus's default handler.
type Handler struct {
	reg      *Registry
	fallback dbus.Handler
}

// NewHandler returns a bus handler for r.
func NewHandler(r *Registry) *Handler {
	return &Handler{reg: r, fallback: dbus.NewDefaultHandler()}
}

// Option installs a handler for r on a connection being opened.
func Option(r *Registry) dbus.ConnOption {
	return dbus.WithHandler(NewHandler(r))
}

func (h *Handler) LookupObject(path dbus.ObjectPath) (dbus.ServerObject, bool) {
	if path != proto.SystemUIPath {
		return h.fallback.LookupObject(path)
	}
	obj, _ := h.fallback.LookupObject(path)
	return requestObject{reg: h.reg, fallback: obj}, true
}

type requestObject struct {
	reg      *Registry
	fallback dbus.ServerObject
}

func (o requestObject) LookupInterface(name string) (dbus.Interface, bool) {
	// Calls without an interface header are routed to the request interface.
	if name == proto.SystemUIInterface || name == "" {
		return requestInterface{reg: o.reg}, true
	}
	if o.fallback == nil {
		return nil, false
	}
	return o.fallback.LookupInterface(name)
}

type requestInterface struct {
	reg *Registry
}

func (i requestInterface) LookupMethod(name string) (dbus.Method, bool) {
	if !i.reg.Has(name) {
		return nil, false
	}
	return requestMethod{reg: i.reg, name: name}, true
}

// requestMethod passes the raw body to the registered handler.
type requestMethod struct {
	reg  *Registry
	name string
}

func (m requestMethod) DecodeArguments(_ *dbus.Conn, _ string, _ *dbus.Message, body []interface{}) ([]interface{}, error) {
	return body, nil
}

func (m requestMethod) Call(args ...interface{}) ([]interface{}, error) {
	v, derr := reply(m.reg.Call(m.name, Args(args)))
	if derr != nil {
		return nil, derr
	}
	return []interface{}{v}, nil
}

func (m requestMethod) NumArguments() int             { return 0 }
func (m requestMethod) NumReturns() int               { return 1 }
func (m requestMethod) ArgumentValue(int) interface{} { return nil }
func (m requestMethod) ReturnValue(int) interface{}   { return dbus.Variant{} }

// Args tags each body value with its bus type code.
func Args(body []interface{}) []proto.Arg {
	args := make([]proto.Arg, 0, len(body))
	for _, v := range body {
		var t proto.ArgType
		if sig := dbus.SignatureOf(v).String(); sig != "" {
			t = proto.ArgType(sig[0])
		}
		args = append(args, proto.Arg{Type: t, Value: v})
	}
	return args
}

// Export claims the systemui service name on conn. The connection must have
// been opened with Option so the request object is served.
func Export(conn *dbus.Conn) error {
	res, err := conn.RequestName(proto.SystemUIService, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("host: request name: %w", err)
	}
	if res != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("host: %s already owned", proto.SystemUIService)
	}
	return nil
}

// reply maps a handler result onto a bus reply. A handler that returns no
// value still answers with a variant.
func reply(v dbus.Variant, err error) (dbus.Variant, *dbus.Error) {
	if err != nil {
		return dbus.Variant{}, dbus.MakeFailedError(err)
	}
	if v.Signature().String() == "" {
		v = dbus.MakeVariant(int32(0))
	}
	return v, nil
}
