package proto

import "strings"

// Renderer command line flags.
const (
	FlagBootup   = "--bootup"
	FlagShutdown = "--shutdown"
	FlagSound    = "--sound"
	FlagNoSound  = "--no-sound"
	FlagWindow   = "--window"
	FlagNoWindow = "--no-window"
)

// Request is one splash display request handed to the renderer process.
type Request struct {
	Mode           Mode
	Sound          bool
	SuppressWindow bool
}

// Args encodes the request as renderer flags, one per field.
func (r Request) Args() []string {
	args := make([]string, 0, 3)
	if r.Mode == ModeBootup {
		args = append(args, FlagBootup)
	} else {
		args = append(args, FlagShutdown)
	}
	if r.Sound {
		args = append(args, FlagSound)
	} else {
		args = append(args, FlagNoSound)
	}
	if r.SuppressWindow {
		args = append(args, FlagNoWindow)
	} else {
		args = append(args, FlagWindow)
	}
	return args
}

// CommandLine joins the renderer invocation into a single command string.
//
// The string is meant to be split with shell quoting rules before exec.
func CommandLine(renderer string, r Request) string {
	return strings.Join(append([]string{renderer}, r.Args()...), " ")
}
