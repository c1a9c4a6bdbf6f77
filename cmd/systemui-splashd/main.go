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
)

func main() {
	var (
		debug   = pflag.Bool("debug", false, "Log debug messages.")
		version = pflag.Bool("version", false, "Print version and exit.")
	)
	pflag.Parse()

	if *version {
		fmt.Println("systemui-splashd", buildinfo.String())
		return
	}

	cfg, err := app.LoadControllerConfig()
	if err != nil {
		fatalf("%v", err)
	}

	log := logging.NewLogger("systemui-splashd", *debug || cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunController(ctx, log, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logging.Critical(log, "controller failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
