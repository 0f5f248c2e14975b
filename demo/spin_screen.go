package demo

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/onion/ecs"
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/core"
	"github.com/gekko3d/onion/render/gpu"
)

// DefaultSpinRate is in radians per second.
const DefaultSpinRate = math32.Pi / 4

// spinEase is the fraction of the remaining rate difference closed per update.
const spinEase = 0.1

// SpinScreen orbits the camera around its target at a fixed radius and
// height. The orbit angle lives in the ECS world on OrbitEntity.
type SpinScreen struct {
	Rate float32

	rate    float32
	radius  float32
	height  float32
	entered bool
}

func NewSpinScreen(rate float32) *SpinScreen {
	return &SpinScreen{Rate: rate}
}

func (s *SpinScreen) Resize(app *GameApp, engine *gpu.Context, size platform.Size) {
	engine.Camera().SetAspectFromSize(size.Width, size.Height)
}

func (s *SpinScreen) Input(app *GameApp, engine *gpu.Context, ev platform.KeyEvent) {
	if ev.Key == platform.KeyTab && ev.IsPressed() && !ev.Repeat {
		s.leave(app)
		app.SwitchTo(DemoScreenName)
	}
}

func (s *SpinScreen) Update(app *GameApp, engine *gpu.Context) {
	cam := engine.Camera()
	pos, ok := app.World.Position(OrbitEntity)
	if !ok {
		return
	}
	vel, _ := app.World.Velocity(OrbitEntity)

	if !s.entered {
		s.enter(cam, pos)
	}

	s.rate = core.Lerp(s.rate, s.Rate, spinEase)
	if vel != nil {
		vel.DX = s.rate * app.Time.Seconds()
	}
	cam.Eye = cam.Target.Add(core.CylToCartesian(s.radius, pos.X, s.height))
}

// enter captures the current eye as the orbit so switching screens does not
// jump the camera.
func (s *SpinScreen) enter(cam *core.Camera, pos *ecs.Position) {
	offset := cam.Eye.Sub(cam.Target)
	s.radius = math32.Hypot(offset.X(), offset.Z())
	s.height = offset.Y()
	pos.X = math32.Atan2(offset.Z(), offset.X())
	s.rate = 0
	s.entered = true
}

func (s *SpinScreen) leave(app *GameApp) {
	s.entered = false
	if vel, ok := app.World.Velocity(OrbitEntity); ok {
		vel.DX = 0
	}
}
