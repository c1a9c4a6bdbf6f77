package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"splashscreen/app"
	"splashscreen/internal/buildinfo"
	"splashscreen/internal/logging"
	"splashscreen/systemui/tasks/splashutil"
)

func main() {
	o, err := splashutil.ParseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fatalf("splashscreen-util: %v", err)
	}
	if o.Version {
		fmt.Println("splashscreen-util", buildinfo.String())
		return
	}

	e, err := app.LoadRendererEnv()
	if err != nil {
		fatalf("splashscreen-util: %v", err)
	}

	log := logging.NewLogger("splashscreen-util", o.Debug || e.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunRenderer(ctx, log, o); err != nil {
		stop()
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
