package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, false, false))

	Critical(log, "failed to set root window logo background")

	out := buf.String()
	if !strings.Contains(out, "level=CRITICAL") {
		t.Fatalf("output = %q, want level=CRITICAL", out)
	}
	if strings.Contains(out, "time=") {
		t.Fatalf("output = %q, want no time attribute", out)
	}
}

func TestDebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, false, true))
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("output = %q, want empty", buf.String())
	}

	buf.Reset()
	log = slog.New(newHandler(&buf, true, true))
	log.Debug("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Fatalf("output = %q, want debug record", buf.String())
	}
}
