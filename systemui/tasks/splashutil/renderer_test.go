package splashutil

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"splashscreen/hal"
	"splashscreen/systemui/proto"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeHAL struct {
	mu sync.Mutex

	geom    hal.Geometry
	geomErr error

	showErr     error
	showExits   bool // Show returns without waiting for ctx
	shown       []image.Image
	soundAtShow int

	bgErr error
	bg    []image.Image

	playErr error
	played  []string
}

func (f *fakeHAL) Screen() hal.Screen   { return fakeScreen{f} }
func (f *fakeHAL) Window() hal.Window   { return fakeWindow{f} }
func (f *fakeHAL) Root() hal.RootWindow { return fakeRoot{f} }
func (f *fakeHAL) Sound() hal.Sound     { return fakeSound{f} }
func (f *fakeHAL) Close() error         { return nil }

type fakeScreen struct{ f *fakeHAL }

func (s fakeScreen) Geometry() (hal.Geometry, error) { return s.f.geom, s.f.geomErr }

type fakeWindow struct{ f *fakeHAL }

func (w fakeWindow) Show(ctx context.Context, geom hal.Geometry, img image.Image, shown func()) error {
	w.f.mu.Lock()
	w.f.shown = append(w.f.shown, img)
	w.f.soundAtShow = len(w.f.played)
	w.f.mu.Unlock()
	if w.f.showErr != nil {
		return w.f.showErr
	}
	shown()
	if w.f.showExits {
		return nil
	}
	<-ctx.Done()
	return nil
}

type fakeRoot struct{ f *fakeHAL }

func (r fakeRoot) SetBackground(img image.Image) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.bg = append(r.f.bg, img)
	return r.f.bgErr
}

type fakeSound struct{ f *fakeHAL }

func (s fakeSound) Play(path, name string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if name != SoundName {
		return errors.New("unexpected media name " + name)
	}
	s.f.played = append(s.f.played, path)
	return s.f.playErr
}

type fixture struct {
	hal *fakeHAL
	cfg Config
	r   *Renderer
}

func newFixture(t *testing.T, geom hal.Geometry) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		BootupImage:   filepath.Join(dir, "bootup.png"),
		ShutdownImage: filepath.Join(dir, "shutdown.png"),
		ShutdownSound: filepath.Join(dir, "bye.wav"),
	}
	writePNG(t, cfg.BootupImage, 1600, 480)
	writePNG(t, cfg.ShutdownImage, 200, 100)

	f := &fixture{hal: &fakeHAL{geom: geom}, cfg: cfg}
	f.r = New(quietLogger(), f.hal, cfg, WithIconTheme(IconTheme{}))
	return f
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestWindowModeShowsFittedImageThenSound(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	o := Options{Mode: proto.ModeBootup, Sound: true}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := f.r.Run(ctx, o); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(f.hal.shown) != 1 {
		t.Fatalf("Show calls = %d, want 1", len(f.hal.shown))
	}
	if got := f.hal.shown[0].Bounds().Size(); got != image.Pt(800, 240) {
		t.Fatalf("shown size = %v, want 800x240", got)
	}
	if f.hal.soundAtShow != 0 {
		t.Fatalf("sound played before the window was shown")
	}
	if len(f.hal.played) != 1 || f.hal.played[0] != f.cfg.ShutdownSound {
		t.Fatalf("played = %v, want [%s]", f.hal.played, f.cfg.ShutdownSound)
	}
	if len(f.hal.bg) != 0 {
		t.Fatalf("window mode touched the root background")
	}
}

func TestWindowModeSilent(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.hal.played) != 0 {
		t.Fatalf("played = %v, want none", f.hal.played)
	}
}

func TestWindowModeRotatesOnPortrait(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 480, Height: 800})
	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := f.hal.shown[0].Bounds().Size(); got != image.Pt(100, 200) {
		t.Fatalf("shown size = %v, want 100x200", got)
	}
}

func TestWindowModeMissingImageAborts(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	f.r.cfg.BootupImage = filepath.Join(t.TempDir(), "missing.gif")

	err := f.r.Run(cancelled(), Options{Mode: proto.ModeBootup, Sound: true})
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("Run err = %v, want ErrNoImage", err)
	}
	if len(f.hal.shown) != 0 || len(f.hal.played) != 0 {
		t.Fatalf("shown=%d played=%d, want nothing", len(f.hal.shown), len(f.hal.played))
	}
}

func TestWindowModeUnexpectedExit(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	f.hal.showExits = true

	err := f.r.Run(context.Background(), Options{Mode: proto.ModeBootup})
	if !errors.Is(err, ErrUnexpectedExit) {
		t.Fatalf("Run err = %v, want ErrUnexpectedExit", err)
	}

	f.hal.showErr = errors.New("no display")
	err = f.r.Run(context.Background(), Options{Mode: proto.ModeBootup})
	if !errors.Is(err, ErrUnexpectedExit) {
		t.Fatalf("Run err = %v, want ErrUnexpectedExit", err)
	}
}

func TestBackgroundMode(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})

	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown, Sound: true, NoWindow: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.hal.shown) != 0 {
		t.Fatalf("background mode created a window")
	}
	if len(f.hal.bg) != 1 || f.hal.bg[0].Bounds().Size() != image.Pt(200, 100) {
		t.Fatalf("bg = %v", f.hal.bg)
	}
	if len(f.hal.played) != 1 {
		t.Fatalf("played = %v, want one sound", f.hal.played)
	}
}

func TestBackgroundModeFailuresDegrade(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	f.hal.bgErr = errors.New("BadAlloc")
	f.hal.playErr = errors.New("no audio device")

	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown, Sound: true, NoWindow: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.hal.bg) != 1 || len(f.hal.played) != 1 {
		t.Fatalf("bg=%d played=%d, want 1/1", len(f.hal.bg), len(f.hal.played))
	}

	// Without an image the background is skipped but the sound still plays.
	f = newFixture(t, hal.Geometry{Width: 800, Height: 480})
	f.r.cfg.ShutdownImage = "no-such-icon"
	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown, Sound: true, NoWindow: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.hal.bg) != 0 || len(f.hal.played) != 1 {
		t.Fatalf("bg=%d played=%d, want 0/1", len(f.hal.bg), len(f.hal.played))
	}
}

func TestBackgroundModeBlocksUntilDone(t *testing.T) {
	f := newFixture(t, hal.Geometry{Width: 800, Height: 480})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.r.Run(ctx, Options{Mode: proto.ModeShutdown, NoWindow: true}) }()

	select {
	case err := <-done:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestScreenFailure(t *testing.T) {
	f := newFixture(t, hal.Geometry{})
	f.hal.geomErr = errors.New("cannot open display")
	if err := f.r.Run(cancelled(), Options{Mode: proto.ModeShutdown}); err == nil {
		t.Fatalf("Run succeeded without a screen")
	}
}
