package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU remaps clip-space depth from OpenGL's [-1, 1] to the [0, 1]
// range used by WebGPU (and D3D/Metal).
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a right-handed, Y-up perspective camera. Fovy is in degrees.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32
	Aspect float32
	Znear  float32
	Zfar   float32
}

func NewCamera(eye, target, up mgl32.Vec3, fovy, aspect, znear, zfar float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     up,
		Fovy:   fovy,
		Aspect: aspect,
		Znear:  znear,
		Zfar:   zfar,
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return OpenGLToWGPU.Mul4(mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Znear, c.Zfar))
}

func (c *Camera) BuildViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// SetAspectFromSize updates the aspect ratio; zero sizes are ignored.
func (c *Camera) SetAspectFromSize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// CameraUniform is the GPU mirror of a Camera: one column-major mat4x4<f32>.
type CameraUniform struct {
	ViewProj mgl32.Mat4
}

func NewCameraUniform() CameraUniform {
	return CameraUniform{ViewProj: mgl32.Ident4()}
}

func (u *CameraUniform) UpdateViewProj(c *Camera) {
	u.ViewProj = c.BuildViewProjectionMatrix()
}
