// Package controls turns key state into camera motion.
package controls

import (
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/core"
)

// CameraController orbits a camera around its target. W/S (or Up/Down)
// move toward and away from the target, A/D (or Left/Right) circle it at a
// constant radius.
type CameraController struct {
	Speed float32

	forward  bool
	backward bool
	left     bool
	right    bool
}

func NewCameraController(speed float32) *CameraController {
	return &CameraController{Speed: speed}
}

// ProcessEvents records the pressed state of movement keys. It reports
// whether the key was one the controller tracks.
func (c *CameraController) ProcessEvents(ev platform.KeyEvent) bool {
	pressed := ev.IsPressed()
	switch ev.Key {
	case platform.KeyW, platform.KeyUp:
		c.forward = pressed
	case platform.KeyS, platform.KeyDown:
		c.backward = pressed
	case platform.KeyA, platform.KeyLeft:
		c.left = pressed
	case platform.KeyD, platform.KeyRight:
		c.right = pressed
	default:
		return false
	}
	return true
}

// Reset releases every tracked key.
func (c *CameraController) Reset() {
	c.forward, c.backward, c.left, c.right = false, false, false, false
}

func (c *CameraController) Moving() bool {
	return c.forward || c.backward || c.left || c.right
}

func (c *CameraController) UpdateCamera(cam *core.Camera) {
	forward := cam.Target.Sub(cam.Eye)
	forwardMag := forward.Len()
	if forwardMag == 0 {
		return
	}
	forwardNorm := forward.Mul(1 / forwardMag)

	// Stop short of the target instead of passing through it.
	if c.forward && forwardMag > c.Speed {
		cam.Eye = cam.Eye.Add(forwardNorm.Mul(c.Speed))
	}
	if c.backward {
		cam.Eye = cam.Eye.Sub(forwardNorm.Mul(c.Speed))
	}

	right := forwardNorm.Cross(cam.Up)

	// Radius may have changed above.
	forward = cam.Target.Sub(cam.Eye)
	forwardMag = forward.Len()

	if c.right {
		cam.Eye = cam.Target.Sub(forward.Add(right.Mul(c.Speed)).Normalize().Mul(forwardMag))
	}
	if c.left {
		cam.Eye = cam.Target.Sub(forward.Sub(right.Mul(c.Speed)).Normalize().Mul(forwardMag))
	}
}
