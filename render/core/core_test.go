package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func closeEnough(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

func defaultCamera() *Camera {
	return NewCamera(
		mgl32.Vec3{0, 1, 2},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		45, 800.0/600.0, 0.1, 100,
	)
}

func TestCameraUniform_StartsAsIdentity(t *testing.T) {
	u := NewCameraUniform()
	assert.Equal(t, mgl32.Ident4(), u.ViewProj)
}

func TestCameraUniform_TracksCameraMutations(t *testing.T) {
	cam := defaultCamera()
	u := NewCameraUniform()

	cam.Eye = mgl32.Vec3{3, 2, 1}
	cam.Fovy = 60
	cam.Aspect = 2
	cam.Target = mgl32.Vec3{0, 0.5, 0}
	u.UpdateViewProj(cam)

	want := cam.BuildViewProjectionMatrix()
	if !u.ViewProj.ApproxEqualThreshold(want, eps) {
		t.Errorf("Uniform is stale: got %v, want %v", u.ViewProj, want)
	}
}

func TestCamera_DepthRangeIsZeroToOne(t *testing.T) {
	cam := defaultCamera()
	vp := cam.ProjectionMatrix()

	near := vp.Mul4x1(mgl32.Vec4{0, 0, -cam.Znear, 1})
	far := vp.Mul4x1(mgl32.Vec4{0, 0, -cam.Zfar, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-4)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestCamera_TargetProjectsToCenter(t *testing.T) {
	cam := defaultCamera()
	p := cam.BuildViewProjectionMatrix().Mul4x1(cam.Target.Vec4(1))
	assert.InDelta(t, 0, p.X()/p.W(), 1e-5)
	assert.InDelta(t, 0, p.Y()/p.W(), 1e-5)
}

func TestCamera_SetAspectFromSizeIgnoresZero(t *testing.T) {
	cam := defaultCamera()
	cam.SetAspectFromSize(0, 600)
	assert.Equal(t, float32(800.0/600.0), cam.Aspect)
	cam.SetAspectFromSize(1000, 500)
	assert.Equal(t, float32(2), cam.Aspect)
}

func TestGenerateInstances_Grid(t *testing.T) {
	insts := GenerateInstances(3, 4, 2)
	require.Len(t, insts, 12)

	// Row-major order, centered by half the grid extent.
	assert.Equal(t, mgl32.Vec3{-4, 0, -3}, insts[0].Position)
	assert.Equal(t, mgl32.Vec3{-2, 0, -3}, insts[1].Position)
	assert.Equal(t, mgl32.Vec3{2, 0, 1}, insts[11].Position)

	for _, inst := range insts {
		assert.Equal(t, float32(1), inst.Scale)
		assert.Equal(t, float32(0), inst.Position.Y())
	}
}

func TestGenerateInstances_Deterministic(t *testing.T) {
	a := GenerateInstances(5, 5, 1.5)
	b := GenerateInstances(5, 5, 1.5)
	assert.Equal(t, a, b)
	assert.Nil(t, GenerateInstances(0, 5, 1))
}

func TestGenerateInstances_Rotation(t *testing.T) {
	// 2x2 grid with spacing 1 puts one instance exactly at the origin.
	insts := GenerateInstances(2, 2, 1)
	var origin *Instance
	for i := range insts {
		if insts[i].Position.X() == 0 && insts[i].Position.Z() == 0 {
			origin = &insts[i]
		}
	}
	require.NotNil(t, origin)
	assert.Equal(t, mgl32.QuatIdent(), origin.Rotation)

	off := insts[0]
	axis := off.Position.Normalize()
	want := mgl32.QuatRotate(InstanceRotation, axis)
	if !off.Rotation.ApproxEqualThreshold(want, eps) {
		t.Errorf("Unexpected rotation %v, want %v", off.Rotation, want)
	}
	// Rotating about its own offset leaves the offset direction fixed.
	rotated := off.Rotation.Rotate(axis)
	if !rotated.ApproxEqualThreshold(axis, eps) {
		t.Errorf("Axis moved under rotation: %v", rotated)
	}
}

func TestInstance_ToRawIsRowMajor(t *testing.T) {
	inst := Instance{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: 1}
	raw := inst.ToRaw()

	assert.Equal(t, float32(1), raw.Model[0][3])
	assert.Equal(t, float32(2), raw.Model[1][3])
	assert.Equal(t, float32(3), raw.Model[2][3])
	assert.Equal(t, [4]float32{0, 0, 0, 1}, raw.Model[3])

	assert.Len(t, InstancesToRaw([]Instance{inst, inst}), 2)
}

func TestPentagonMesh(t *testing.T) {
	m := PentagonMesh()
	assert.Equal(t, uint32(5), m.NumVertices())
	assert.Equal(t, uint32(9), m.NumIndices())
	for _, idx := range m.Indices {
		assert.Less(t, uint32(idx), m.NumVertices())
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, mgl32.Vec2{1, 2}, LerpVec2(mgl32.Vec2{0, 0}, mgl32.Vec2{2, 4}, 0.5))
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, LerpVec3(mgl32.Vec3{}, mgl32.Vec3{2, 4, 6}, 1))
}

func TestCylToCartesian(t *testing.T) {
	p := CylToCartesian(2, math32.Pi/2, 3)
	if !closeEnough(p.X(), 0) || !closeEnough(p.Y(), 3) || !closeEnough(p.Z(), 2) {
		t.Errorf("Unexpected point %v", p)
	}
	assert.InDelta(t, 2, CylToCartesian(2, 1.234, 0).Len(), 1e-5)
}
