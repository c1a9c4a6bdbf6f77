//go:build !cgo

package hal

import "fmt"

// hostSound is a stub when CGO audio backends are unavailable.
type hostSound struct{}

func newHostSound() Sound { return hostSound{} }

func (hostSound) Play(path, name string) error {
	return fmt.Errorf("sound %q: %w", name, ErrNotImplemented)
}
