package splashutil

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeFile decodes any registered raster format.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("splashutil: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("splashutil: decode %s: %w", path, err)
	}
	return img, nil
}

// loadImage resolves name as a file path when it contains a slash, as a
// theme icon otherwise.
func (r *Renderer) loadImage(name string) (image.Image, error) {
	if strings.Contains(name, "/") {
		img, err := decodeFile(name)
		if err != nil {
			return nil, fmt.Errorf("image file failed: %w", err)
		}
		return img, nil
	}

	path, size, ok := r.icons.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("splashutil: no icon info for %q", name)
	}
	if size <= 0 {
		size = DefaultIconSize
	}
	img, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load icon: %w", err)
	}
	return ScaleToSize(img, size), nil
}
