package host

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	"splashscreen/systemui/proto"
)

func TestRegistryCall(t *testing.T) {
	r := NewRegistry()

	var got []proto.Arg
	r.AddHandler(proto.SplashOpenReq, func(args []proto.Arg) (dbus.Variant, error) {
		got = args
		return dbus.MakeVariant(true), nil
	})

	args := Prefix("com.example", "/com/example", "com.example", "done")
	v, err := r.Call(proto.SplashOpenReq, args)
	if err != nil {
		t.Fatalf("Call() err = %v", err)
	}
	if v.Value() != true {
		t.Fatalf("Call() = %v, want true", v)
	}
	if len(got) != proto.HostPrefixArgs {
		t.Fatalf("handler saw %d args, want %d", len(got), proto.HostPrefixArgs)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	r.AddHandler(proto.SplashCloseReq, func([]proto.Arg) (dbus.Variant, error) { return dbus.Variant{}, nil })
	r.RemoveHandler(proto.SplashCloseReq)
	r.RemoveHandler(proto.SplashCloseReq)

	if _, err := r.Call(proto.SplashCloseReq, nil); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("Call() err = %v, want ErrNoHandler", err)
	}
}

func TestReplyMapsError(t *testing.T) {
	if _, derr := reply(dbus.Variant{}, errors.New("bad args")); derr == nil {
		t.Fatal("reply(err) = nil *dbus.Error, want failure")
	}
	if _, derr := reply(dbus.MakeVariant(uint32(1)), nil); derr != nil {
		t.Fatalf("reply(nil) = %v, want nil", derr)
	}
}

func TestReplyFillsEmptyVariant(t *testing.T) {
	v, derr := reply(dbus.Variant{}, nil)
	if derr != nil {
		t.Fatalf("reply() err = %v", derr)
	}
	if v.Value() != int32(0) {
		t.Fatalf("reply() = %v, want int32 0", v)
	}
}

func TestArgsTagsBusTypes(t *testing.T) {
	got := Args([]interface{}{"svc", dbus.ObjectPath("/p"), uint32(1), true, int32(7)})
	want := []proto.ArgType{proto.ArgString, proto.ArgObjectPath, proto.ArgUint32, proto.ArgBool, 'i'}
	if len(got) != len(want) {
		t.Fatalf("Args() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Fatalf("Args()[%d].Type = %q, want %q", i, got[i].Type, want[i])
		}
	}
}

func TestHandlerRoutesRawBody(t *testing.T) {
	r := NewRegistry()
	var seen []proto.Arg
	r.AddHandler(proto.SplashOpenReq, func(args []proto.Arg) (dbus.Variant, error) {
		seen = args
		if _, err := proto.DecodeOpenArgs(args); err != nil {
			return dbus.Variant{}, err
		}
		return dbus.MakeVariant(int32(0)), nil
	})

	obj, ok := NewHandler(r).LookupObject(proto.SystemUIPath)
	if !ok {
		t.Fatal("LookupObject(request path) = false")
	}
	iface, ok := obj.LookupInterface(proto.SystemUIInterface)
	if !ok {
		t.Fatal("LookupInterface(request) = false")
	}
	if _, ok := iface.LookupMethod(proto.SplashCloseReq); ok {
		t.Fatal("LookupMethod(unregistered) = true")
	}
	m, ok := iface.LookupMethod(proto.SplashOpenReq)
	if !ok {
		t.Fatal("LookupMethod(open) = false")
	}
	dec, ok := m.(dbus.ArgumentDecoder)
	if !ok {
		t.Fatal("open method decodes with reflection")
	}

	prefix := []interface{}{"com.example", dbus.ObjectPath("/com/example"), "com.example", "done"}
	for _, tt := range []struct {
		body    []interface{}
		wantErr bool
	}{
		{append(prefix[:4:4], uint32(1)), false},
		{append(prefix[:4:4], uint32(1), true), false},
		{prefix, true},
		{append(prefix[:4:4], "bootup"), true},
	} {
		args, err := dec.DecodeArguments(nil, ":1.1", &dbus.Message{Body: tt.body}, tt.body)
		if err != nil {
			t.Fatalf("DecodeArguments(%v) err = %v", tt.body, err)
		}
		ret, err := m.Call(args...)
		if len(seen) != len(tt.body) {
			t.Fatalf("handler saw %d args, want %d", len(seen), len(tt.body))
		}
		if tt.wantErr {
			var derr *dbus.Error
			if !errors.As(err, &derr) || derr.Name != "org.freedesktop.DBus.Error.Failed" {
				t.Fatalf("Call(%v) err = %v, want failed error", tt.body, err)
			}
			continue
		}
		if err != nil || len(ret) != 1 {
			t.Fatalf("Call(%v) = %v, %v", tt.body, ret, err)
		}
	}
}

func TestHandlerOtherPathsFallThrough(t *testing.T) {
	h := NewHandler(NewRegistry())
	obj, ok := h.LookupObject("/org/example")
	if !ok {
		t.Fatal("LookupObject(other) = false")
	}
	if _, ok := obj.LookupInterface(proto.SystemUIInterface); ok {
		t.Fatal("request interface served on another path")
	}
	if _, ok := obj.LookupInterface("org.freedesktop.DBus.Introspectable"); !ok {
		t.Fatal("introspection missing on other path")
	}
}
