package splashutil

import (
	"strconv"

	"github.com/spf13/pflag"

	"splashscreen/systemui/proto"
)

// Options is the parsed renderer command line.
type Options struct {
	Mode     proto.Mode
	Sound    bool
	NoWindow bool

	Debug      bool
	ConfigPath string
	Version    bool
}

// DefaultOptions is what the renderer does when started without flags.
func DefaultOptions() Options {
	return Options{Mode: proto.ModeShutdown, Sound: true, NoWindow: true}
}

// choice is a value-less switch that stores one fixed outcome when given.
// Several choices share a target, so the last one on the command line wins.
type choice struct {
	apply func()
}

func (c choice) String() string { return "" }

func (c choice) Set(v string) error {
	on, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	if on {
		c.apply()
	}
	return nil
}

func (c choice) Type() string { return "bool" }

func addChoice(fs *pflag.FlagSet, name, usage string, apply func()) {
	fs.VarPF(choice{apply: apply}, name, "", usage).NoOptDefVal = "true"
}

// NewFlagSet binds the renderer flags to o.
func NewFlagSet(name string, o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SortFlags = false

	addChoice(fs, "bootup", "show the bootup splash", func() { o.Mode = proto.ModeBootup })
	addChoice(fs, "shutdown", "show the shutdown splash (default)", func() { o.Mode = proto.ModeShutdown })
	addChoice(fs, "sound", "play the notification sound (default)", func() { o.Sound = true })
	addChoice(fs, "no-sound", "stay silent", func() { o.Sound = false })
	addChoice(fs, "window", "show a full-screen window", func() { o.NoWindow = false })
	addChoice(fs, "no-window", "paint the root window background instead (default)", func() { o.NoWindow = true })

	fs.BoolVar(&o.Debug, "debug", false, "log debug messages")
	fs.StringVar(&o.ConfigPath, "config", "", "configuration file (default $SPLASH_GCONF or /etc/systemui/splash.yaml)")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	return fs
}

// ParseFlags parses args (without the program name). Unknown options are
// ignored and repeated switches resolve to the last one given.
func ParseFlags(args []string) (Options, error) {
	o := DefaultOptions()
	fs := NewFlagSet("splashscreen-util", &o)
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func (o Options) soundLabel() string {
	if o.Sound {
		return "YES"
	}
	return "NO"
}

func (o Options) logoLabel() string {
	if o.NoWindow {
		return "BACKGROUND"
	}
	return "WINDOW"
}
