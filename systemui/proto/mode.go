package proto

import "fmt"

// Mode selects which splash is shown.
type Mode uint32

const (
	ModeBootup Mode = iota + 1
	ModeShutdown
)

// ParseMode maps a raw host value onto a Mode.
func ParseMode(v uint32) (Mode, bool) {
	switch Mode(v) {
	case ModeBootup, ModeShutdown:
		return Mode(v), true
	default:
		return 0, false
	}
}

func (m Mode) String() string {
	switch m {
	case ModeBootup:
		return "BOOTUP"
	case ModeShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("mode(%d)", uint32(m))
	}
}
