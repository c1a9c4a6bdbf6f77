//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type hostWindow struct{}

func newHostWindow() Window { return hostWindow{} }

// Show runs the ebiten loop on the calling (main) goroutine.
func (hostWindow) Show(ctx context.Context, geom Geometry, img image.Image, shown func()) error {
	if img == nil {
		return errors.New("window: nil image")
	}

	g := &splashGame{ctx: ctx, src: img, shown: shown}
	ebiten.SetWindowTitle("splash")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	if geom.Valid() {
		ebiten.SetWindowSize(geom.Width, geom.Height)
	}
	ebiten.SetFullscreen(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	ebiten.SetTPS(30)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type splashGame struct {
	ctx   context.Context
	src   image.Image
	img   *ebiten.Image
	shown func()

	drawn    bool
	notified bool
}

func (g *splashGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	// Update runs after Draw has presented at least one frame.
	if g.drawn && !g.notified {
		g.notified = true
		if g.shown != nil {
			g.shown()
		}
	}
	return nil
}

func (g *splashGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.Fill(color.White)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := g.img.Bounds().Dx(), g.img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((sw-iw)/2), float64((sh-ih)/2))
	screen.DrawImage(g.img, op)
	g.drawn = true
}

func (g *splashGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
