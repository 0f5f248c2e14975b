package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceRotation is the tilt applied to every off-center grid instance.
const InstanceRotation = math32.Pi / 4

// Instance places one copy of the base mesh. Instances are immutable once
// generated.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// InstanceRaw is the GPU form of an Instance: a row-major model matrix.
type InstanceRaw struct {
	Model [4][4]float32
}

func (i Instance) Matrix() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z())
	rotate := i.Rotation.Mat4()
	scale := mgl32.Scale3D(i.Scale, i.Scale, i.Scale)
	return translate.Mul4(rotate).Mul4(scale)
}

func (i Instance) ToRaw() InstanceRaw {
	m := i.Matrix()
	var raw InstanceRaw
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			raw.Model[r][c] = m.At(r, c)
		}
	}
	return raw
}

// GenerateInstances lays out rows*cols instances on the XZ plane, centered on
// the origin. Every instance away from the origin is rotated by
// InstanceRotation about the axis through its own offset.
func GenerateInstances(rows, cols int, spacing float32) []Instance {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	displacement := mgl32.Vec3{float32(cols) * spacing * 0.5, 0, float32(rows) * spacing * 0.5}

	instances := make([]Instance, 0, rows*cols)
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			pos := mgl32.Vec3{float32(x) * spacing, 0, float32(z) * spacing}.Sub(displacement)

			rot := mgl32.QuatIdent()
			if pos.X() != 0 || pos.Z() != 0 {
				rot = mgl32.QuatRotate(InstanceRotation, pos.Normalize())
			}

			instances = append(instances, Instance{
				Position: pos,
				Rotation: rot,
				Scale:    1.0,
			})
		}
	}
	return instances
}

func InstancesToRaw(instances []Instance) []InstanceRaw {
	raw := make([]InstanceRaw, len(instances))
	for i, inst := range instances {
		raw[i] = inst.ToRaw()
	}
	return raw
}
