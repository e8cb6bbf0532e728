package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a TRS transform around a local origin. Rotation holds Euler
// angles in radians applied X, then Y, then Z.
type Transform struct {
	Origin   mgl32.Vec3
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	return m.Mul4(mgl32.Translate3D(-t.Origin.X(), -t.Origin.Y(), -t.Origin.Z()))
}
