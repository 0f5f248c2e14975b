package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/gekko3d/onion"
	"github.com/gekko3d/onion/demo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := onion.DefaultConfig()
	if *configPath != "" {
		loaded, err := onion.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}

	logger := onion.NewDefaultLogger("onion", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := demo.NewGameApp(cfg, logger)
	if err := onion.Run(ctx, cfg, app, onion.WithLogger(logger)); err != nil {
		logger.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}
