//go:build cgo

package hal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const soundSampleRate = 48000

// hostSound plays sound files through Ebiten's audio package.
type hostSound struct {
	mu      sync.Mutex
	ctx     *audio.Context
	players []*audio.Player
	files   []*os.File
}

func newHostSound() Sound { return &hostSound{} }

func (s *hostSound) Play(path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sound %q: %w", name, err)
	}

	stream, err := decodeSound(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("sound %q: decode %s: %w", name, path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		s.ctx = audio.CurrentContext()
		if s.ctx == nil {
			s.ctx = audio.NewContext(soundSampleRate)
		}
	}

	p, err := s.ctx.NewPlayer(stream)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("sound %q: player: %w", name, err)
	}
	p.Play()

	// The player streams from f; both live as long as the process.
	s.players = append(s.players, p)
	s.files = append(s.files, f)
	return nil
}

func decodeSound(path string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga":
		return vorbis.DecodeWithSampleRate(soundSampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(soundSampleRate, r)
	default:
		return wav.DecodeWithSampleRate(soundSampleRate, r)
	}
}
