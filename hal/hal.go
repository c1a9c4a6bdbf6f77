package hal

import (
	"context"
	"errors"
	"image"
)

var ErrNotImplemented = errors.New("not implemented")

// Geometry is the screen size in pixels.
type Geometry struct {
	Width  int
	Height int
}

// Portrait reports whether the screen is taller than wide.
func (g Geometry) Portrait() bool { return g.Height > g.Width }

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool { return g.Width > 0 && g.Height > 0 }

// Screen reports the display geometry.
type Screen interface {
	Geometry() (Geometry, error)
}

// Window presents one image in a borderless, kept-above, full-screen window.
//
// Show blocks in the UI loop. It returns nil once ctx is done, or the loop's
// error if it ends by itself. shown is called once, after the first frame has
// been presented.
type Window interface {
	Show(ctx context.Context, geom Geometry, img image.Image, shown func()) error
}

// RootWindow replaces the root window background.
type RootWindow interface {
	SetBackground(img image.Image) error
}

// Sound plays a sound file without waiting for it to finish.
type Sound interface {
	Play(path, name string) error
}

// HAL is the only contact point between the renderer and the display server.
type HAL interface {
	Screen() Screen
	Window() Window
	Root() RootWindow
	Sound() Sound
	Close() error
}
