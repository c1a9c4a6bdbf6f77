package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/godbus/dbus/v5"
	"golang.org/x/sync/errgroup"

	"splashscreen/internal/buildinfo"
	"splashscreen/systemui/bus"
	"splashscreen/systemui/host"
	"splashscreen/systemui/plugins/splashscreen"
)

// ControllerConfig is read from the environment.
type ControllerConfig struct {
	Splash splashscreen.Config
	Debug  bool `env:"SPLASH_DEBUG"`
}

// LoadControllerConfig parses the SPLASH_* environment.
func LoadControllerConfig() (ControllerConfig, error) {
	var cfg ControllerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("app: environment: %w", err)
	}
	return cfg, nil
}

// RunController connects to the system bus, loads the splash plugin into a
// local host and serves it until ctx is done or the bus goes away.
func RunController(ctx context.Context, log *slog.Logger, cfg ControllerConfig) (err error) {
	defer recoverCritical(log)
	log.Info("systemui splash controller starting", "version", buildinfo.String())

	reg := host.NewRegistry()
	conn, err := dbus.ConnectSystemBus(
		host.Option(reg),
		dbus.WithSignalHandler(dbus.NewSequentialSignalHandler()),
	)
	if err != nil {
		return fmt.Errorf("app: system bus: %w", err)
	}
	defer conn.Close()

	plugin := splashscreen.New(log, cfg.Splash)
	if err := plugin.Init(reg, bus.Wrap(conn), bus.DialSession); err != nil {
		return err
	}
	defer plugin.Close()

	if err := host.Export(conn); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return plugin.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case <-conn.Context().Done():
			return errors.New("app: system bus connection lost")
		}
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}
	log.Info("systemui splash controller stopped")
	return err
}
