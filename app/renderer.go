package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"splashscreen/hal"
	"splashscreen/internal/gconf"
	"splashscreen/systemui/tasks/splashutil"
)

// RendererEnv holds the renderer settings taken from the environment.
type RendererEnv struct {
	Debug bool `env:"SPLASH_DEBUG"`
}

func LoadRendererEnv() (RendererEnv, error) {
	var e RendererEnv
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("app: environment: %w", err)
	}
	return e, nil
}

// RunRenderer shows the splash described by o. It must be called from the
// main goroutine; window mode runs the UI loop there.
func RunRenderer(ctx context.Context, log *slog.Logger, o splashutil.Options) error {
	defer recoverCritical(log)

	store, err := openStore(o.ConfigPath)
	if err != nil {
		log.Warn("configuration unavailable, using fallbacks", "err", err)
		store = gconf.Empty()
	}

	h := hal.New()
	defer func() {
		if err := h.Close(); err != nil {
			log.Debug("display close", "err", err)
		}
	}()

	r := splashutil.New(log, h, splashutil.LoadConfig(store))
	return r.Run(ctx, o)
}

func openStore(path string) (*gconf.Client, error) {
	if path != "" {
		return gconf.Open(path)
	}
	return gconf.Default()
}
