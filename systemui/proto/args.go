package proto

import (
	"errors"
	"fmt"
)

// ArgType is the bus type code of one host handler argument.
type ArgType byte

const (
	ArgString     ArgType = 's'
	ArgObjectPath ArgType = 'o'
	ArgUint32     ArgType = 'u'
	ArgBool       ArgType = 'b'
)

// Arg is one loosely typed argument as delivered by the plugin host.
type Arg struct {
	Type  ArgType
	Value any
}

// HostPrefixArgs is the number of fields the host prepends to every request
// (callback service, path, interface and method).
const HostPrefixArgs = 4

var (
	ErrArity   = errors.New("proto: wrong number of arguments")
	ErrArgType = errors.New("proto: argument type mismatch")
)

// OpenRequest is the validated payload of a splashscreen_open call.
type OpenRequest struct {
	Mode  uint32
	Sound bool
}

var openSignature = []ArgType{ArgUint32, ArgBool}

// DecodeOpenArgs validates host arguments against {u32[, bool]}.
func DecodeOpenArgs(args []Arg) (OpenRequest, error) {
	argc := len(args) - HostPrefixArgs
	if argc < 1 || argc > len(openSignature) {
		return OpenRequest{}, fmt.Errorf("%w: got %d", ErrArity, len(args))
	}

	payload := args[HostPrefixArgs:]
	for i, a := range payload {
		if a.Type != openSignature[i] {
			return OpenRequest{}, fmt.Errorf("%w: arg %d is %q, want %q", ErrArgType, i, a.Type, openSignature[i])
		}
	}

	var req OpenRequest
	mode, ok := payload[0].Value.(uint32)
	if !ok {
		return OpenRequest{}, fmt.Errorf("%w: mode value %T", ErrArgType, payload[0].Value)
	}
	req.Mode = mode

	if len(payload) == 2 {
		sound, ok := payload[1].Value.(bool)
		if !ok {
			return OpenRequest{}, fmt.Errorf("%w: sound value %T", ErrArgType, payload[1].Value)
		}
		req.Sound = sound
	}
	return req, nil
}
