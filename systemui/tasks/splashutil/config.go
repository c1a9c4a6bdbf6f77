package splashutil

import "splashscreen/systemui/proto"

// Configuration store keys.
const (
	KeyBootupImage   = "/system/systemui/splash/bootup_image"
	KeyShutdownImage = "/system/systemui/splash/shutdown_image"
	KeyShutdownSound = "/system/systemui/splash/shutdown_soundfilename"
)

// Values used when the store has no entry.
const (
	FallbackBootupImage   = "/tmp/foo.gif"
	FallbackShutdownImage = "/tmp/bar.gif"
	FallbackShutdownSound = "/usr/share/sounds/ui-shutdown.wav"
)

// SoundName is the media name the sound cue is played under.
const SoundName = "Shutdown notification"

// Store is a read-only string configuration store.
type Store interface {
	GetString(key string) (string, bool)
}

// Config holds the resolved resources.
type Config struct {
	BootupImage   string
	ShutdownImage string
	ShutdownSound string
}

// LoadConfig reads the three resource paths from s.
func LoadConfig(s Store) Config {
	return Config{
		BootupImage:   lookup(s, KeyBootupImage, FallbackBootupImage),
		ShutdownImage: lookup(s, KeyShutdownImage, FallbackShutdownImage),
		ShutdownSound: lookup(s, KeyShutdownSound, FallbackShutdownSound),
	}
}

func lookup(s Store, key, fallback string) string {
	if s == nil {
		return fallback
	}
	if v, ok := s.GetString(key); ok {
		return v
	}
	return fallback
}

// Image returns the image for mode.
func (c Config) Image(mode proto.Mode) string {
	if mode == proto.ModeBootup {
		return c.BootupImage
	}
	return c.ShutdownImage
}
