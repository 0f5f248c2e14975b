package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/onion/platform"
	"github.com/gekko3d/onion/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct{ redraws int }

func (f *fakeTarget) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakeTarget) RequestRedraw()                             { f.redraws++ }

func TestContext_ResizeInvariant(t *testing.T) {
	c := NewHeadless(platform.Size{Width: 800, Height: 600})

	sizes := []platform.Size{
		{Width: 1024, Height: 768},
		{Width: 1, Height: 1},
		{Width: 1024, Height: 768},
		{Width: 1920, Height: 1080},
	}
	for _, s := range sizes {
		c.Resize(s)
		assert.Equal(t, s.Width, c.Config().Width)
		assert.Equal(t, s.Height, c.Config().Height)
		assert.Equal(t, s, c.Size())
	}

	before := c.Config()
	for _, s := range []platform.Size{{}, {Width: 0, Height: 50}, {Width: 50, Height: 0}} {
		c.Resize(s)
		assert.Equal(t, before, c.Config())
	}
}

func TestContext_ResizeRequestsRedraw(t *testing.T) {
	c := NewHeadless(platform.Size{Width: 800, Height: 600})
	r := &fakeTarget{}
	c.target = r

	c.Resize(platform.Size{Width: 640, Height: 480})
	c.Resize(platform.Size{Width: 640, Height: 480})
	c.Resize(platform.Size{})
	assert.Equal(t, 2, r.redraws)
}

func TestContext_UpdateRefreshesUniform(t *testing.T) {
	c := NewHeadless(platform.Size{Width: 800, Height: 600})
	cam := c.Camera()
	require.NotNil(t, cam)
	assert.InDelta(t, 800.0/600.0, cam.Aspect, 1e-6)

	cam.Eye = mgl32.Vec3{4, 3, 2}
	cam.Target = mgl32.Vec3{1, 0, 0}
	require.NoError(t, c.Update())

	want := cam.BuildViewProjectionMatrix()
	if !c.CameraUniform().ViewProj.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Uniform not refreshed: %v vs %v", c.CameraUniform().ViewProj, want)
	}
}

func TestContext_WithCameraAndGrid(t *testing.T) {
	cam := core.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 60, 1, 0.1, 50)
	c := NewHeadless(platform.Size{Width: 200, Height: 100}, WithCamera(cam), WithInstanceGrid(2, 3, 2))

	assert.Same(t, cam, c.Camera())
	assert.Equal(t, float32(2), cam.Aspect)
	assert.Len(t, c.Instances(), 6)
}

func TestContext_RenderWithoutDevice(t *testing.T) {
	c := NewHeadless(platform.Size{Width: 800, Height: 600})
	assert.ErrorIs(t, c.Render(), ErrNotInitialized)
	c.Release()
}

func TestPipelineLayoutHelpers(t *testing.T) {
	layout := vertexBufferLayout()
	assert.Equal(t, uint64(20), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)

	assert.Len(t, paddedIndices([]uint16{0, 1, 2}), 4)
	assert.Len(t, paddedIndices([]uint16{0, 1}), 2)

	u := core.NewCameraUniform()
	assert.Len(t, uniformBytes(&u), 64)
}
