// Package splashscreen is the systemui splash screen plugin.
//
// It watches the system bus for the DSME shutdown indication and the session
// bus for the desktop shell claiming its name, serves the splashscreen_open
// request, and spawns the splash renderer process for each accepted trigger.
package splashscreen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/google/shlex"

	"splashscreen/internal/logging"
	"splashscreen/systemui/bus"
	"splashscreen/systemui/host"
	"splashscreen/systemui/proto"
)

var (
	ErrSetup    = errors.New("splashscreen: bus setup failed")
	ErrArgument = errors.New("splashscreen: bad arguments")
	ErrClosed   = errors.New("splashscreen: plugin closed")
)

// Config is read from the environment by the daemon.
type Config struct {
	RendererPath string `env:"SPLASH_RENDERER" envDefault:"/usr/bin/splashscreen-util"`
	SentinelPath string `env:"SPLASH_SENTINEL" envDefault:"/tmp/splashscreen-already-running"`
}

// Host is the part of the plugin host the plugin registers with.
type Host interface {
	AddHandler(name string, fn host.HandlerFunc)
	RemoveHandler(name string)
}

type Option func(*Plugin)

// WithSpawner replaces the process launcher.
func WithSpawner(s Spawner) Option {
	return func(p *Plugin) { p.spawner = s }
}

type hostResult struct {
	v   dbus.Variant
	err error
}

type hostCall struct {
	fn    host.HandlerFunc
	args  []proto.Arg
	reply chan hostResult
}

// Plugin owns both bus subscriptions and the readiness state.
//
// All state is touched from the goroutine running Run (or, before Run starts
// and after it returns, from the caller of Init and Close).
type Plugin struct {
	log     *slog.Logger
	cfg     Config
	spawner Spawner

	bus         *bus.Manager
	host        Host
	session     bus.Conn
	shutdownSub *bus.Subscription
	appMgrSub   *bus.Subscription
	ready       *Readiness

	calls     chan hostCall
	done      chan struct{}
	closeOnce sync.Once
}

func New(log *slog.Logger, cfg Config, opts ...Option) *Plugin {
	if log == nil {
		log = slog.Default()
	}
	p := &Plugin{
		log:     log,
		cfg:     cfg,
		spawner: execSpawner{},
		bus:     bus.NewManager(log),
		ready:   NewReadiness(proto.AppMgrName),
		calls:   make(chan hostCall),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init installs both subscriptions and registers the request handlers.
//
// system is the host's long-lived connection; dialSession opens the session
// connection, which the plugin owns. On error nothing stays installed.
func (p *Plugin) Init(h Host, system bus.Conn, dialSession func() (bus.Conn, error)) error {
	if err := p.setupBus(system, dialSession); err != nil {
		logging.Critical(p.log, "failed to setup dbus properly, failing", "err", err)
		return err
	}

	p.host = h
	if h != nil {
		h.AddHandler(proto.SplashOpenReq, p.serialize(p.HandleOpen))
		h.AddHandler(proto.SplashCloseReq, p.serialize(p.HandleClose))
	}
	return nil
}

func (p *Plugin) setupBus(system bus.Conn, dialSession func() (bus.Conn, error)) error {
	sub, err := p.bus.Subscribe(system, proto.ShutdownIndMatch(), p.handleShutdownSignal)
	if err != nil {
		p.log.Warn("unable to add match for shutdown ind signal", "err", err)
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	p.shutdownSub = sub

	session, err := p.bus.Dial(dialSession)
	if err != nil {
		p.log.Warn("failed to open connection to session bus", "err", err)
		p.bus.Unsubscribe(p.shutdownSub)
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	p.session = session

	sub, err = p.bus.Subscribe(session, proto.AppMgrMatch(), p.handleOwnerChanged)
	if err != nil {
		p.log.Warn("unable to add match for desktop owner changed signal", "err", err)
		p.bus.Release(p.session)
		p.session = nil
		p.bus.Unsubscribe(p.shutdownSub)
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	p.appMgrSub = sub
	return nil
}

// Run dispatches bus signals and host requests until ctx is done or the
// plugin is closed. It must not run concurrently with Close.
func (p *Plugin) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case sig := <-p.shutdownSub.C():
			p.shutdownSub.Deliver(sig)
		case sig := <-p.appMgrSub.C():
			p.deliverSession(sig)
		case c := <-p.calls:
			v, err := c.fn(c.args)
			c.reply <- hostResult{v: v, err: err}
		}
	}
}

// Ready reports whether the desktop shell has been seen on the session bus.
func (p *Plugin) Ready() bool { return p.ready.Ready() }

// HandleOpen serves splashscreen_open(mode u32[, sound bool]).
func (p *Plugin) HandleOpen(args []proto.Arg) (dbus.Variant, error) {
	req, err := proto.DecodeOpenArgs(args)
	if err != nil {
		p.log.Error("called with wrong number of arguments", "count", len(args), "err", err)
		return dbus.Variant{}, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	mode, ok := proto.ParseMode(req.Mode)
	if !ok {
		p.log.Debug("open request ignored", "mode", req.Mode)
		return placeholder(), nil
	}
	switch mode {
	case proto.ModeBootup:
		p.dispatch(proto.Request{Mode: proto.ModeBootup, Sound: req.Sound})
	case proto.ModeShutdown:
		// The shutdown splash follows the DSME signal, not this request.
		p.log.Debug("open request ignored", "mode", mode)
	}
	return placeholder(), nil
}

// HandleClose serves splashscreen_close. The renderer is not stopped here.
func (p *Plugin) HandleClose([]proto.Arg) (dbus.Variant, error) {
	return placeholder(), nil
}

// Close removes the handlers and every subscription and releases the session
// connection. It is safe to call more than once.
func (p *Plugin) Close() {
	p.closeOnce.Do(func() { close(p.done) })

	if p.host != nil {
		p.host.RemoveHandler(proto.SplashOpenReq)
		p.host.RemoveHandler(proto.SplashCloseReq)
		p.host = nil
	}
	p.bus.Unsubscribe(p.shutdownSub)
	p.releaseSession()
	p.bus.Close()
}

func (p *Plugin) handleShutdownSignal(sig *dbus.Signal) {
	if !bus.Matches(sig, proto.DSMESignalInterface, proto.DSMEShutdownInd) {
		return
	}
	p.log.Info("shutdown_ind from DSME, running splashscreen-util")
	p.dispatch(proto.Request{
		Mode:           proto.ModeShutdown,
		Sound:          true,
		SuppressWindow: p.ready.Ready(),
	})
}

func (p *Plugin) handleOwnerChanged(sig *dbus.Signal) {
	if p.ready.Observe(sig) {
		p.log.Info("desktop shell is up", "name", proto.AppMgrName)
	}
}

// deliverSession runs the session handler, then tears the session side down
// once readiness has been reached. Teardown stays out of the handler itself.
func (p *Plugin) deliverSession(sig *dbus.Signal) {
	p.appMgrSub.Deliver(sig)
	if p.ready.Ready() {
		p.releaseSession()
	}
}

func (p *Plugin) releaseSession() {
	if p.session == nil {
		return
	}
	p.bus.Unsubscribe(p.appMgrSub)
	p.bus.Release(p.session)
	p.session = nil
}

func (p *Plugin) dispatch(req proto.Request) {
	if sentinelPresent(p.cfg.SentinelPath) {
		p.log.Info("already running from init.d, cancelling spawn")
		return
	}

	cmd := proto.CommandLine(p.cfg.RendererPath, req)
	argv, err := shlex.Split(cmd)
	if err != nil || len(argv) == 0 {
		logging.Critical(p.log, "failed splash-util async spawn", "cmd", cmd, "err", err)
		return
	}
	if err := p.spawner.Spawn(argv); err != nil {
		logging.Critical(p.log, "failed splash-util async spawn", "cmd", cmd, "err", err)
		return
	}
	p.log.Debug("splash-util spawned", "cmd", cmd)
}

// serialize hands a host request to the Run goroutine and waits for its reply.
func (p *Plugin) serialize(fn host.HandlerFunc) host.HandlerFunc {
	return func(args []proto.Arg) (dbus.Variant, error) {
		c := hostCall{fn: fn, args: args, reply: make(chan hostResult, 1)}
		select {
		case p.calls <- c:
		case <-p.done:
			return dbus.Variant{}, ErrClosed
		}
		select {
		case r := <-c.reply:
			return r.v, r.err
		case <-p.done:
			return dbus.Variant{}, ErrClosed
		}
	}
}

// placeholder is the payload-free reply of every request.
func placeholder() dbus.Variant {
	return dbus.MakeVariant(int32(0))
}
