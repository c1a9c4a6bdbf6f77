// Package splashutil is the splash renderer: it shows one image either in a
// full-screen window or as the root window background, optionally plays a
// sound, and then stays up until it is terminated.
package splashutil

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"splashscreen/hal"
	"splashscreen/internal/logging"
	"splashscreen/systemui/proto"
)

var (
	ErrNoImage        = errors.New("splashutil: no image to show")
	ErrUnexpectedExit = errors.New("splashutil: display loop ended by itself")
)

type Option func(*Renderer)

// WithIconTheme replaces the icon search path.
func WithIconTheme(t IconTheme) Option {
	return func(r *Renderer) { r.icons = t }
}

type Renderer struct {
	log   *slog.Logger
	hal   hal.HAL
	cfg   Config
	icons IconTheme
}

func New(log *slog.Logger, h hal.HAL, cfg Config, opts ...Option) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{log: log, hal: h, cfg: cfg, icons: DefaultIconTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run shows the splash described by o and blocks until ctx is done.
//
// In window mode a missing image aborts before any window is created. A
// display loop that returns while ctx is still live is reported as
// ErrUnexpectedExit.
func (r *Renderer) Run(ctx context.Context, o Options) error {
	r.log.Info("splash requested",
		"type", o.Mode.String(),
		"sound", o.soundLabel(),
		"logo", o.logoLabel(),
	)

	geom, err := r.hal.Screen().Geometry()
	if err != nil {
		logging.Critical(r.log, "failed to query screen geometry", "err", err)
		return fmt.Errorf("splashutil: screen: %w", err)
	}

	img := r.prepare(o.Mode, geom)

	if o.NoWindow {
		r.setBackground(img)
		if o.Sound {
			r.playSound()
		}
		<-ctx.Done()
		return nil
	}

	if img == nil {
		logging.Critical(r.log, "no splash image, not creating window", "type", o.Mode.String())
		return ErrNoImage
	}

	shown := func() {
		r.log.Debug("splash window shown", "width", geom.Width, "height", geom.Height)
		if o.Sound {
			r.playSound()
		}
	}
	err = r.hal.Window().Show(ctx, geom, img, shown)
	if ctx.Err() != nil {
		return nil
	}
	logging.Critical(r.log, "display loop exited unexpectedly", "err", err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedExit, err)
	}
	return ErrUnexpectedExit
}

// prepare loads the image for mode and shapes it for the screen. It returns
// nil if the image cannot be loaded.
func (r *Renderer) prepare(mode proto.Mode, geom hal.Geometry) image.Image {
	name := r.cfg.Image(mode)
	img, err := r.loadImage(name)
	if err != nil {
		logging.Critical(r.log, "failed to load splash image", "name", name, "err", err)
		return nil
	}
	img = RotateIfPortrait(img, geom)
	if !geom.Valid() {
		return img
	}
	return Fit(img, geom.Width, geom.Height)
}

func (r *Renderer) setBackground(img image.Image) {
	r.log.Info("setting root window background to logo")
	if img == nil {
		logging.Critical(r.log, "failed to create logo pixmap")
		return
	}
	if err := r.hal.Root().SetBackground(img); err != nil {
		logging.Critical(r.log, "failed to set root window logo background", "err", err)
		return
	}
	r.log.Info("root window bg set to show logo")
}

func (r *Renderer) playSound() {
	snd := r.hal.Sound()
	if snd == nil {
		logging.Critical(r.log, "no sound context")
		return
	}
	if err := snd.Play(r.cfg.ShutdownSound, SoundName); err != nil {
		logging.Critical(r.log, "sound playback failed", "file", r.cfg.ShutdownSound, "err", err)
		return
	}
	r.log.Info("sound playing", "file", r.cfg.ShutdownSound)
}
