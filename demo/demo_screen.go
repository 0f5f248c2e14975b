package demo

import (
	"github.com/gekko3d/onion/controls"
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/gpu"
)

// DemoScreen drives the camera with the orbit controller.
type DemoScreen struct {
	controller *controls.CameraController
}

func NewDemoScreen(speed float32) *DemoScreen {
	return &DemoScreen{controller: controls.NewCameraController(speed)}
}

func (s *DemoScreen) Resize(app *GameApp, engine *gpu.Context, size platform.Size) {
	engine.Camera().SetAspectFromSize(size.Width, size.Height)
}

func (s *DemoScreen) Input(app *GameApp, engine *gpu.Context, ev platform.KeyEvent) {
	if ev.Key == platform.KeyTab {
		if ev.IsPressed() && !ev.Repeat {
			s.controller.Reset()
			app.SwitchTo(SpinScreenName)
		}
		return
	}
	s.controller.ProcessEvents(ev)
}

func (s *DemoScreen) Update(app *GameApp, engine *gpu.Context) {
	s.controller.UpdateCamera(engine.Camera())
}
