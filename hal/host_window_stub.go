//go:build !cgo

package hal

import (
	"context"
	"errors"
	"image"
)

type hostWindow struct{}

func newHostWindow() Window { return hostWindow{} }

func (hostWindow) Show(context.Context, Geometry, image.Image, func()) error {
	return errors.New("window mode requires cgo (build with CGO_ENABLED=1)")
}
