package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbit_Advance(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{10, 0, 0}, 4)
	o.Speed = 1
	o.Advance(1)

	assert.InDelta(t, math32.Pi/2, o.Rotation, eps)
	assert.InDelta(t, 1.0, o.Spin, eps)
}

func TestOrbit_NonPositivePeriodDoesNotOrbit(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{10, 0, 0}, 0)
	o.Advance(2)

	assert.Equal(t, float32(0), o.Rotation)
	assert.Equal(t, float32(2), o.Spin)
}

func TestOrbit_PlanetCircleAroundAxis(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{10, 0, 0}, 365)
	o.Rotation = math32.Pi / 2
	o.Spin = 1.3 // spinning in place never moves the center

	assertVec3(t, mgl32.Vec3{0, 10, 0}, o.Center())
}

func TestOrbit_MoonCirclesPivot(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{2, 0, 0}, 30)
	o.Moon = true
	o.Pivot = mgl32.Vec3{10, 0, 0}
	o.Spin = math32.Pi / 2

	assertVec3(t, mgl32.Vec3{10, 0, -2}, o.Center())
}

func TestOrbit_ZeroAxisFallsBackToZ(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{5, 0, 0}, 365)
	o.Axis = mgl32.Vec3{}
	o.Rotation = math32.Pi

	assertVec3(t, mgl32.Vec3{-5, 0, 0}, o.Center())
}

func TestTransform_Matrix(t *testing.T) {
	tr := NewTransform()
	assert.True(t, mgl32.Ident4().ApproxEqual(tr.Matrix()))

	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assertVec3(t, mgl32.Vec3{3, 2, 3}, p.Vec3())

	tr = NewTransform()
	tr.Origin = mgl32.Vec3{1, 0, 0}
	tr.Rotation = mgl32.Vec3{0, 0, math32.Pi / 2}
	assertVec3(t, mgl32.Vec3{}, tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, tr.Matrix().Mul4x1(mgl32.Vec4{2, 0, 0, 1}).Vec3())
}
