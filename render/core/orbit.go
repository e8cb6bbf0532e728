package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultRotationSpeed float32 = 10

// Orbit animates a body circling the world origin. Period is the orbit
// length in arbitrary "days"; larger periods orbit slower.
type Orbit struct {
	Position mgl32.Vec3
	Pivot    mgl32.Vec3
	Axis     mgl32.Vec3
	Period   float32
	Speed    float32

	Rotation float32
	Spin     float32

	// Moon bodies circle Pivot (their planet) instead of spinning in place.
	Moon bool
}

func NewOrbit(position mgl32.Vec3, period float32) Orbit {
	return Orbit{
		Position: position,
		Axis:     mgl32.Vec3{0, 0, 1},
		Period:   period,
		Speed:    DefaultRotationSpeed,
	}
}

func (o *Orbit) Advance(dt float32) {
	if o.Period > 0 {
		o.Rotation += dt * (2 * math32.Pi / o.Period) * o.Speed
	}
	o.Spin += dt
}

func (o *Orbit) World() mgl32.Mat4 {
	axis := o.Axis
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 0, 1}
	}
	axis = axis.Normalize()

	m := mgl32.HomogRotate3D(o.Rotation, axis)
	if o.Moon {
		m = m.Mul4(mgl32.Translate3D(o.Pivot.X(), o.Pivot.Y(), o.Pivot.Z()))
		m = m.Mul4(mgl32.HomogRotate3D(o.Spin, mgl32.Vec3{0, 1, 0}))
		return m.Mul4(mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()))
	}
	m = m.Mul4(mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()))
	return m.Mul4(mgl32.HomogRotate3D(o.Spin, axis))
}

// Center is the body's world-space center for the current frame.
func (o *Orbit) Center() mgl32.Vec3 {
	return o.World().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}
