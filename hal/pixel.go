package hal

import (
	"image"
	"image/color"
	"image/draw"
)

// flatten composites img over white into a fresh RGBA image anchored at 0,0.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// zpixmap32 packs img as 32 bits per pixel ZPixmap data for a 24/32 bit visual.
//
// LSB-first servers expect B,G,R,X in memory order; MSB-first expect X,R,G,B.
func zpixmap32(img image.Image, msbFirst bool) []byte {
	src := flatten(img)
	out := make([]byte, len(src.Pix))
	for i := 0; i+3 < len(src.Pix); i += 4 {
		r, g, b := src.Pix[i+0], src.Pix[i+1], src.Pix[i+2]
		if msbFirst {
			out[i+0] = 0xFF
			out[i+1] = r
			out[i+2] = g
			out[i+3] = b
		} else {
			out[i+0] = b
			out[i+1] = g
			out[i+2] = r
			out[i+3] = 0xFF
		}
	}
	return out
}
