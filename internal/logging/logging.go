// Package logging builds the slog loggers used by both binaries.
package logging

import (
	"context"
	"io"
	"log/slog"
	"log/syslog"
	"os"
)

// LevelCritical sits above slog.LevelError and is rendered as CRITICAL.
const LevelCritical = slog.Level(12)

// NewLogger returns a logger tagged with the binary name.
//
// Records go to syslog (facility user) when it is reachable, else to stderr.
func NewLogger(tag string, debug bool) *slog.Logger {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		return slog.New(newHandler(os.Stderr, debug, true))
	}
	return slog.New(newHandler(w, debug, false))
}

func newHandler(w io.Writer, debug, withTime bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				// syslog stamps its own time.
				if !withTime {
					return slog.Attr{}
				}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
					a.Value = slog.StringValue("CRITICAL")
				}
			}
			return a
		},
	})
}

// Critical logs msg at LevelCritical.
func Critical(log *slog.Logger, msg string, args ...any) {
	log.Log(context.Background(), LevelCritical, msg, args...)
}
