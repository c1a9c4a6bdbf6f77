package hal

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// x11Display is a lazily opened connection to the default X screen.
type x11Display struct {
	once   sync.Once
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	err    error
}

func (d *x11Display) connect() error {
	d.once.Do(func() {
		c, err := xgb.NewConn()
		if err != nil {
			d.err = fmt.Errorf("x11: connect: %w", err)
			return
		}
		d.conn = c
		d.setup = xproto.Setup(c)
		d.screen = d.setup.DefaultScreen(c)
	})
	return d.err
}

func (d *x11Display) Geometry() (Geometry, error) {
	if err := d.connect(); err != nil {
		return Geometry{}, err
	}
	return Geometry{
		Width:  int(d.screen.WidthInPixels),
		Height: int(d.screen.HeightInPixels),
	}, nil
}

// SetBackground uploads img into a root-depth pixmap, installs it as the
// root window background and clears the root so it repaints.
func (d *x11Display) SetBackground(img image.Image) error {
	if img == nil {
		return errors.New("x11: nil image")
	}
	if err := d.connect(); err != nil {
		return err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w > 0x7FFF || h > 0x7FFF {
		return fmt.Errorf("x11: invalid pixmap size %dx%d", w, h)
	}

	depth := d.screen.RootDepth
	if !d.has32bpp(depth) {
		return fmt.Errorf("x11: unsupported root depth %d", depth)
	}

	c := d.conn
	root := d.screen.Root

	pix, err := xproto.NewPixmapId(c)
	if err != nil {
		return fmt.Errorf("x11: pixmap id: %w", err)
	}
	if err := xproto.CreatePixmapChecked(c, depth, pix, xproto.Drawable(root), uint16(w), uint16(h)).Check(); err != nil {
		return fmt.Errorf("x11: create pixmap: %w", err)
	}
	defer xproto.FreePixmap(c, pix)

	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		return fmt.Errorf("x11: gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(c, gc, xproto.Drawable(pix), 0, nil).Check(); err != nil {
		return fmt.Errorf("x11: create gc: %w", err)
	}
	defer xproto.FreeGC(c, gc)

	data := zpixmap32(img, d.setup.ImageByteOrder == xproto.ImageOrderMSBFirst)
	rowBytes := w * 4
	rows := (int(d.setup.MaximumRequestLength)*4 - putImageHeader) / rowBytes
	if rows < 1 {
		return fmt.Errorf("x11: image row of %d bytes exceeds request size", rowBytes)
	}
	for y := 0; y < h; y += rows {
		n := rows
		if y+n > h {
			n = h - y
		}
		chunk := data[y*rowBytes : (y+n)*rowBytes]
		if err := xproto.PutImageChecked(c, xproto.ImageFormatZPixmap, xproto.Drawable(pix), gc,
			uint16(w), uint16(n), 0, int16(y), 0, depth, chunk).Check(); err != nil {
			return fmt.Errorf("x11: put image: %w", err)
		}
	}

	if err := xproto.ChangeWindowAttributesChecked(c, root, xproto.CwBackPixmap, []uint32{uint32(pix)}).Check(); err != nil {
		return fmt.Errorf("x11: set background: %w", err)
	}
	if err := xproto.ClearAreaChecked(c, false, root, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("x11: clear root: %w", err)
	}
	return nil
}

func (d *x11Display) has32bpp(depth byte) bool {
	for _, f := range d.setup.PixmapFormats {
		if f.Depth == depth {
			return f.BitsPerPixel == 32
		}
	}
	return false
}

func (d *x11Display) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}
