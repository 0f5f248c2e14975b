package onion

import (
	"context"
	"fmt"

	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/gpu"
)

// Run opens the window, initializes the graphics context and drives app
// until the exit key, a close request, ctx cancellation, or a fatal surface
// error. It must be called from the main goroutine.
func Run(ctx context.Context, cfg Config, app App[*gpu.Context], opts ...LoopOption) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	exitKey, _ := cfg.ExitKeyValue()

	o := loopOptions{logger: NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	win, err := platform.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer win.Close()

	loopOpts := append([]LoopOption{WithExitKey(exitKey), WithLogger(logger)}, opts...)
	loop := NewLoop[*gpu.Context](win, app, loopOpts...)

	err = loop.Start(func() (*gpu.Context, error) {
		return gpu.Init(win, win.Size(), cfg.GPUOptions(logger)...)
	})
	if err != nil {
		return err
	}
	defer loop.Engine().Release()

	logger.Infof("running %q", win.Title())
	return loop.Run(ctx)
}
