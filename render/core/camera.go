package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FpsCamera is a free-look camera driven by yaw/pitch/roll angles (radians).
// The camera looks down its negative Z axis.
type FpsCamera struct {
	Yaw   float32
	Pitch float32
	Roll  float32

	XAxis    mgl32.Vec3
	YAxis    mgl32.Vec3
	ZAxis    mgl32.Vec3
	Position mgl32.Vec3

	Projection mgl32.Mat4
	View       mgl32.Mat4

	fov    float32
	aspect float32
	near   float32
	far    float32
}

func NewFpsCamera() *FpsCamera {
	c := &FpsCamera{
		Projection: mgl32.Ident4(),
		View:       mgl32.Ident4(),
	}
	c.Update()
	return c
}

// SetPerspective takes the vertical field of view in degrees.
func (c *FpsCamera) SetPerspective(fov, aspect, near, far float32) {
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.Projection = mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}

// SetAspect keeps the current field of view and clip range.
func (c *FpsCamera) SetAspect(aspect float32) {
	if c.fov == 0 {
		return
	}
	c.SetPerspective(c.fov, aspect, c.near, c.far)
}

func (c *FpsCamera) Fov() float32    { return c.fov }
func (c *FpsCamera) Aspect() float32 { return c.aspect }
func (c *FpsCamera) Near() float32   { return c.near }
func (c *FpsCamera) Far() float32    { return c.far }

// ClippedProjection is the camera projection with the far plane pulled in.
// Shadow fitting uses it so the light box does not span the whole view distance.
func (c *FpsCamera) ClippedProjection(far float32) mgl32.Mat4 {
	if c.fov == 0 || far <= c.near {
		return c.Projection
	}
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, far)
}

func (c *FpsCamera) RotateX(amount float32) { c.Pitch += amount }
func (c *FpsCamera) RotateY(amount float32) { c.Yaw += amount }
func (c *FpsCamera) RotateZ(amount float32) { c.Roll += amount }

// Forward moves along the camera Z axis. Negative amounts move toward the view direction.
func (c *FpsCamera) Forward(amount float32) {
	c.Position = c.Position.Add(c.ZAxis.Mul(amount))
}

func (c *FpsCamera) Sidestep(amount float32) {
	c.Position = c.Position.Add(c.XAxis.Mul(amount))
}

// Update rebuilds the axes and the view matrix. Yaw is applied about world Y,
// pitch about the yawed X axis and roll about the resulting Z axis.
func (c *FpsCamera) Update() {
	x := mgl32.Vec3{1, 0, 0}
	y := mgl32.Vec3{0, 1, 0}
	z := mgl32.Vec3{0, 0, 1}

	ry := mgl32.HomogRotate3D(c.Yaw, y)
	x = ry.Mul4x1(x.Vec4(0)).Vec3()
	z = ry.Mul4x1(z.Vec4(0)).Vec3()

	rx := mgl32.HomogRotate3D(c.Pitch, x)
	y = rx.Mul4x1(y.Vec4(0)).Vec3()
	z = rx.Mul4x1(z.Vec4(0)).Vec3()

	rz := mgl32.HomogRotate3D(c.Roll, z)
	x = rz.Mul4x1(x.Vec4(0)).Vec3()
	y = rz.Mul4x1(y.Vec4(0)).Vec3()

	view := mgl32.Ident4()
	view.SetRow(0, x.Vec4(-c.Position.Dot(x)))
	view.SetRow(1, y.Vec4(-c.Position.Dot(y)))
	view.SetRow(2, z.Vec4(-c.Position.Dot(z)))
	c.View = view

	c.XAxis = x
	c.YAxis = y
	c.ZAxis = z
}

// EyePosition recovers the camera position from the inverse view matrix.
func (c *FpsCamera) EyePosition() mgl32.Vec3 {
	return c.View.Inv().Col(3).Vec3()
}

func (c *FpsCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// SkyView is the view matrix without translation.
func (c *FpsCamera) SkyView() mgl32.Mat4 {
	v := c.View
	v.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return v
}
