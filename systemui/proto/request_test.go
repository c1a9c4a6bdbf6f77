package proto

import "testing"

func TestCommandLine(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Request{Mode: ModeShutdown, Sound: true}, "/usr/bin/splashscreen-util --shutdown --sound --window"},
		{Request{Mode: ModeShutdown, Sound: true, SuppressWindow: true}, "/usr/bin/splashscreen-util --shutdown --sound --no-window"},
		{Request{Mode: ModeBootup, Sound: true}, "/usr/bin/splashscreen-util --bootup --sound --window"},
		{Request{Mode: ModeBootup}, "/usr/bin/splashscreen-util --bootup --no-sound --window"},
	}
	for _, tt := range tests {
		if got := CommandLine("/usr/bin/splashscreen-util", tt.req); got != tt.want {
			t.Fatalf("CommandLine(%+v) = %q, want %q", tt.req, got, tt.want)
		}
	}
}

func TestMatchRules(t *testing.T) {
	want := "type='signal',interface='com.nokia.dsme.signal',path='/com/nokia/dsme/signal',member='shutdown_ind'"
	if got := ShutdownIndMatch(); got != want {
		t.Fatalf("ShutdownIndMatch() = %q, want %q", got, want)
	}
	want = "type='signal',interface='org.freedesktop.DBus',path='/org/freedesktop/DBus',member='NameOwnerChanged',arg0='com.nokia.HildonDesktop.AppMgr'"
	if got := AppMgrMatch(); got != want {
		t.Fatalf("AppMgrMatch() = %q, want %q", got, want)
	}
}
