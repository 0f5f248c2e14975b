package controls

import (
	"testing"

	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func camera(eye mgl32.Vec3) *core.Camera {
	return core.NewCamera(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, 45, 1, 0.1, 100)
}

func press(k platform.Key) platform.KeyEvent {
	return platform.KeyEvent{Key: k, State: platform.Pressed}
}

func release(k platform.Key) platform.KeyEvent {
	return platform.KeyEvent{Key: k, State: platform.Released}
}

func TestCameraController_ForwardScenario(t *testing.T) {
	cam := camera(mgl32.Vec3{0, 1, 2})
	ctrl := NewCameraController(0.2)

	assert.True(t, ctrl.ProcessEvents(press(platform.KeyW)))
	ctrl.UpdateCamera(cam)

	dir := mgl32.Vec3{0, 1, 2}.Normalize()
	want := mgl32.Vec3{0, 1, 2}.Sub(dir.Mul(0.2))
	if !cam.Eye.ApproxEqualThreshold(want, tolerance) {
		t.Errorf("Expected eye %v, got %v", want, cam.Eye)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up)
}

func TestCameraController_OrbitPreservesRadius(t *testing.T) {
	eyes := []mgl32.Vec3{{0, 1, 2}, {3, 0.5, -1}, {-2, 4, 0.1}, {0.01, 0, 0.02}}
	for _, eye := range eyes {
		for _, k := range []platform.Key{platform.KeyA, platform.KeyD, platform.KeyLeft, platform.KeyRight} {
			cam := camera(eye)
			before := cam.Eye.Sub(cam.Target).Len()

			ctrl := NewCameraController(0.2)
			ctrl.ProcessEvents(press(k))
			for i := 0; i < 10; i++ {
				ctrl.UpdateCamera(cam)
			}

			after := cam.Eye.Sub(cam.Target).Len()
			assert.InDelta(t, before, after, tolerance*10, "eye %v key %v", eye, k)
			assert.NotEqual(t, eye, cam.Eye)
		}
	}
}

func TestCameraController_ForwardGuard(t *testing.T) {
	// d > s: distance shrinks by exactly s.
	cam := camera(mgl32.Vec3{0, 0, 1})
	ctrl := NewCameraController(0.3)
	ctrl.ProcessEvents(press(platform.KeyUp))
	ctrl.UpdateCamera(cam)
	assert.InDelta(t, 0.7, cam.Eye.Len(), tolerance)

	// d <= s: no forward motion at all.
	cam = camera(mgl32.Vec3{0, 0, 0.25})
	ctrl.UpdateCamera(cam)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.25}, cam.Eye)

	cam = camera(mgl32.Vec3{0, 0, 0.3})
	ctrl.UpdateCamera(cam)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.3}, cam.Eye)
}

func TestCameraController_Backward(t *testing.T) {
	cam := camera(mgl32.Vec3{0, 0, 0.1})
	ctrl := NewCameraController(0.5)
	ctrl.ProcessEvents(press(platform.KeyS))
	ctrl.UpdateCamera(cam)
	assert.InDelta(t, 0.6, cam.Eye.Len(), tolerance)
}

func TestCameraController_ReleaseStopsMotion(t *testing.T) {
	cam := camera(mgl32.Vec3{0, 1, 2})
	ctrl := NewCameraController(0.2)
	ctrl.ProcessEvents(press(platform.KeyD))
	assert.True(t, ctrl.Moving())
	ctrl.ProcessEvents(release(platform.KeyD))
	assert.False(t, ctrl.Moving())

	ctrl.UpdateCamera(cam)
	assert.Equal(t, mgl32.Vec3{0, 1, 2}, cam.Eye)

	assert.False(t, ctrl.ProcessEvents(press(platform.KeyTab)))

	ctrl.ProcessEvents(press(platform.KeyW))
	ctrl.Reset()
	assert.False(t, ctrl.Moving())
}

func TestCameraController_DegenerateCamera(t *testing.T) {
	cam := camera(mgl32.Vec3{0, 0, 0})
	ctrl := NewCameraController(0.2)
	ctrl.ProcessEvents(press(platform.KeyS))
	ctrl.UpdateCamera(cam)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Eye)
}
