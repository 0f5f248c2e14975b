package onion

import (
	"context"
	"errors"
	"fmt"

	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/gpu"
)

// Engine is what the frame loop needs from the graphics context.
type Engine interface {
	Resize(size platform.Size)
	Update() error
	Render() error
	Size() platform.Size
}

// EventSource is the host window seen by the loop.
type EventSource interface {
	PollEvents() []platform.Event
	RequestRedraw()
}

type LoopState int

const (
	StateStarting LoopState = iota
	StateConfigured
	StateIdle
	StateRendering
	StateClosing
)

func (s LoopState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateConfigured:
		return "configured"
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateClosing:
		return "closing"
	}
	return fmt.Sprintf("LoopState(%d)", int(s))
}

// FrameStats counts frame outcomes since Start.
type FrameStats struct {
	Rendered      uint64
	Dropped       uint64
	Reconfigured  uint64
	ResizeIgnored uint64
}

type loopOptions struct {
	exitKey platform.Key
	logger  Logger
}

type LoopOption func(*loopOptions)

// WithExitKey sets the key that ends the loop. KeyUnknown disables it.
func WithExitKey(k platform.Key) LoopOption {
	return func(o *loopOptions) { o.exitKey = k }
}

func WithLogger(l Logger) LoopOption {
	return func(o *loopOptions) { o.logger = orNop(l) }
}

// Loop is the per-window frame loop:
// Starting -> Configured -> Idle/Rendering -> Closing.
type Loop[E Engine] struct {
	events EventSource
	app    App[E]
	engine E

	state   LoopState
	exitKey platform.Key
	logger  Logger
	stats   FrameStats
	err     error
}

func NewLoop[E Engine](events EventSource, app App[E], opts ...LoopOption) *Loop[E] {
	o := loopOptions{exitKey: platform.KeyEscape, logger: NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loop[E]{
		events:  events,
		app:     app,
		state:   StateStarting,
		exitKey: o.exitKey,
		logger:  o.logger,
	}
}

func (l *Loop[E]) State() LoopState  { return l.state }
func (l *Loop[E]) Engine() E         { return l.engine }
func (l *Loop[E]) Stats() FrameStats { return l.stats }

// Err returns the error that closed the loop, if any.
func (l *Loop[E]) Err() error { return l.err }

// Start runs the blocking engine initialization. On failure the loop goes
// straight to Closing and the error is returned.
func (l *Loop[E]) Start(init func() (E, error)) error {
	if l.state != StateStarting {
		return fmt.Errorf("loop already started (state %s)", l.state)
	}
	engine, err := init()
	if err != nil {
		l.state = StateClosing
		l.err = fmt.Errorf("engine init: %w", err)
		return l.err
	}
	l.engine = engine
	l.state = StateConfigured
	l.logger.Debugf("loop configured at %s", engine.Size())
	return nil
}

// HandleEvent dispatches one platform event.
func (l *Loop[E]) HandleEvent(ev platform.Event) {
	if l.state == StateStarting || l.state == StateClosing {
		return
	}

	switch ev.Kind {
	case platform.EventKeyboard:
		l.app.Input(l.engine, ev.Key)
		if l.exitKey != platform.KeyUnknown && ev.Key.Key == l.exitKey && ev.Key.IsPressed() {
			l.logger.Infof("exit key %s pressed", l.exitKey)
			l.close(nil)
		}
	case platform.EventCloseRequested:
		l.logger.Infof("close requested")
		l.close(nil)
	case platform.EventResized, platform.EventScaleFactorChanged:
		l.resize(ev.Size)
	case platform.EventRedrawRequested:
		l.frame()
	case platform.EventIdle:
		l.events.RequestRedraw()
	}
}

// Step drains one batch of platform events. It reports false once the loop
// is closing; events after the closing one are dropped.
func (l *Loop[E]) Step() bool {
	if l.state == StateClosing {
		return false
	}
	for _, ev := range l.events.PollEvents() {
		l.HandleEvent(ev)
		if l.state == StateClosing {
			return false
		}
	}
	return true
}

// Run steps until the loop closes or ctx is cancelled. It returns nil for a
// normal exit and the fatal error otherwise.
func (l *Loop[E]) Run(ctx context.Context) error {
	if l.state == StateStarting {
		return errors.New("loop not started")
	}
	for {
		select {
		case <-ctx.Done():
			l.close(nil)
			return nil
		default:
		}
		if !l.Step() {
			return l.err
		}
	}
}

func (l *Loop[E]) close(err error) {
	l.state = StateClosing
	if err != nil && l.err == nil {
		l.err = err
	}
}

func (l *Loop[E]) resize(size platform.Size) {
	l.app.Resize(l.engine, size)
	if size.IsZero() {
		l.stats.ResizeIgnored++
	}
	l.engine.Resize(size)
}

func (l *Loop[E]) frame() {
	l.state = StateRendering
	l.app.Update(l.engine)
	if err := l.engine.Update(); err != nil {
		l.logger.Errorf("camera update: %v", err)
	}
	err := l.engine.Render()
	l.state = StateIdle

	switch {
	case err == nil:
		l.stats.Rendered++
	case errors.Is(err, gpu.ErrSurfaceLost):
		size := l.engine.Size()
		l.logger.Warnf("surface lost, reconfiguring at %s", size)
		l.stats.Reconfigured++
		l.resize(size)
	case errors.Is(err, gpu.ErrSurfaceOutOfMemory), errors.Is(err, gpu.ErrDeviceLost):
		l.logger.Errorf("fatal render error, closing: %v", err)
		l.close(fmt.Errorf("render: %w", err))
	default:
		l.logger.Errorf("dropped frame: %v", err)
		l.stats.Dropped++
	}
}
