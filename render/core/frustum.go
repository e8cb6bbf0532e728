package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type PlaneID int

const (
	PlaneNear PlaneID = iota
	PlaneFar
	PlaneLeft
	PlaneRight
	PlaneTop
	PlaneBottom
	PlaneCount
)

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Transform moves the center by m and scales the radius by the largest axis scale of m.
func (s BoundingSphere) Transform(m mgl32.Mat4) BoundingSphere {
	center := m.Mul4x1(s.Center.Vec4(1)).Vec3()
	scale := math32.Max(m.Col(0).Vec3().Len(), math32.Max(m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()))
	return BoundingSphere{Center: center, Radius: s.Radius * scale}
}

type Frustum struct {
	Planes [PlaneCount]Plane
}

// FrustumFromMatrix extracts the six normalized clip planes of a
// view-projection matrix (OpenGL clip depth, -w..w).
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 { return m.Row(i) }
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[PlaneLeft] = makePlane(r3.Add(r0))
	f.Planes[PlaneRight] = makePlane(r3.Sub(r0))
	f.Planes[PlaneBottom] = makePlane(r3.Add(r1))
	f.Planes[PlaneTop] = makePlane(r3.Sub(r1))
	f.Planes[PlaneNear] = makePlane(r3.Add(r2))
	f.Planes[PlaneFar] = makePlane(r3.Sub(r2))
	return f
}

func makePlane(v mgl32.Vec4) Plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / length), D: v.W() / length}
}

func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

func (f *Frustum) IntersectsSphere(s BoundingSphere) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// FrustumCorners returns the eight world-space corners of the volume
// described by a view-projection matrix, near plane first.
func FrustumCorners(viewProjection mgl32.Mat4) [8]mgl32.Vec3 {
	inv := viewProjection.Inv()
	var corners [8]mgl32.Vec3
	i := 0
	for _, z := range [2]float32{-1, 1} {
		for _, y := range [2]float32{-1, 1} {
			for _, x := range [2]float32{-1, 1} {
				p := inv.Mul4x1(mgl32.Vec4{x, y, z, 1})
				corners[i] = p.Vec3().Mul(1 / p.W())
				i++
			}
		}
	}
	return corners
}
