package splashutil

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"splashscreen/hal"
)

// Rotate90CW returns img turned a quarter turn clockwise.
func Rotate90CW(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	src, ok := img.(*image.RGBA)
	if !ok {
		src = toRGBA(img)
		b = src.Bounds()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := dst.PixOffset(h-1-y, x)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// RotateIfPortrait rotates img clockwise once when the screen is portrait.
func RotateIfPortrait(img image.Image, geom hal.Geometry) image.Image {
	if img == nil || !geom.Portrait() {
		return img
	}
	return Rotate90CW(img)
}

// FitSize returns the size w x h is shown at inside maxW x maxH, and whether
// it has to be scaled. The aspect ratio is kept; one side ends up exactly on
// its bound.
func FitSize(w, h, maxW, maxH int) (int, int, bool) {
	if w <= maxW && h <= maxH {
		return w, h, false
	}
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h, false
	}

	fw, fh := maxW, maxH
	if int64(maxW)*int64(h) > int64(w)*int64(maxH) {
		fw = int(int64(w) * int64(maxH) / int64(h))
	} else {
		fh = int(int64(h) * int64(maxW) / int64(w))
	}
	return max(fw, 1), max(fh, 1), true
}

// Fit returns a copy of img bounded by maxW x maxH, scaled bilinearly when
// it does not fit as is.
func Fit(img image.Image, maxW, maxH int) *image.RGBA {
	b := img.Bounds()
	w, h, scale := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if !scale {
		return toRGBA(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// ScaleToSize scales img up or down so its longer side is size pixels.
func ScaleToSize(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || w <= 0 || h <= 0 || max(w, h) == size {
		return img
	}
	if w >= h {
		w, h = size, max(int(int64(h)*int64(size)/int64(w)), 1)
	} else {
		w, h = max(int(int64(w)*int64(size)/int64(h)), 1), size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
