// Package demo is a sample application: an orbit-controlled camera over the
// instance grid, plus an auto-rotating screen toggled with Tab.
package demo

import (
	"github.com/gekko3d/onion"
	"github.com/gekko3d/onion/ecs"
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/gpu"
)

const (
	DemoScreenName = "demo_screen"
	SpinScreenName = "spin_screen"
)

// OrbitEntity carries the spin screen's orbit: Position.X is the angle in
// radians, Velocity.DX the angle step applied by the movement system.
const OrbitEntity ecs.EntityID = 1

type Screen = onion.Screen[*GameApp, *gpu.Context]

type GameApp struct {
	screens *onion.Screens[*GameApp, *gpu.Context]
	World   *ecs.World
	Time    *onion.Time
	logger  onion.Logger
}

func NewGameApp(cfg onion.Config, logger onion.Logger) *GameApp {
	if logger == nil {
		logger = onion.NewNopLogger()
	}
	world := ecs.NewWorld()
	world.AddEntity(OrbitEntity, ecs.Position{}, ecs.Velocity{})
	world.AddSystem(ecs.NewMovementSystem())

	screens := onion.NewScreens(DemoScreenName, map[string]Screen{
		DemoScreenName: NewDemoScreen(cfg.Camera.Speed),
		SpinScreenName: NewSpinScreen(DefaultSpinRate),
	})
	screens.SetLogger(logger)

	return &GameApp{
		screens: screens,
		World:   world,
		Time:    onion.NewTime(),
		logger:  logger,
	}
}

func (a *GameApp) Screens() *onion.Screens[*GameApp, *gpu.Context] { return a.screens }

// SwitchTo selects the screen for the next call. Safe from inside a screen.
func (a *GameApp) SwitchTo(name string) {
	if !a.screens.Has(name) {
		a.logger.Warnf("switch to unknown screen %q", name)
	}
	a.screens.SetCurrent(name)
}

func (a *GameApp) Resize(engine *gpu.Context, size platform.Size) {
	a.screens.Resize(a, engine, size)
}

func (a *GameApp) Input(engine *gpu.Context, ev platform.KeyEvent) {
	a.screens.Input(a, engine, ev)
}

// Update ticks frame time, runs the current screen, then the ECS systems.
func (a *GameApp) Update(engine *gpu.Context) {
	a.Time.Tick()
	a.screens.Update(a, engine)
	a.World.Update()
}
