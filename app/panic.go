package app

import (
	"log/slog"
	"runtime/debug"

	"splashscreen/internal/logging"
)

// recoverCritical logs a panic with its stack at critical level and
// re-panics. It must be deferred directly.
func recoverCritical(log *slog.Logger) {
	v := recover()
	if v == nil {
		return
	}
	logging.Critical(log, "panic", "value", v, "stack", string(debug.Stack()))
	panic(v)
}
