package core

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultShadowExtent   float32 = 600
	DefaultShadowDistance float32 = 1000

	// casters behind the fitted camera volume still have to land in the map
	shadowCasterMargin float32 = 500
)

var ErrZeroDirection = errors.New("light direction must be non-zero")

// DirectionalLight is a light infinitely far away shining along Direction.
type DirectionalLight struct {
	Color      mgl32.Vec4
	Direction  mgl32.Vec3
	Projection mgl32.Mat4
	Distance   float32
}

func NewDirectionalLight(color mgl32.Vec4, direction mgl32.Vec3) (*DirectionalLight, error) {
	l := &DirectionalLight{
		Color:    color,
		Distance: DefaultShadowDistance,
	}
	if err := l.SetDirection(direction); err != nil {
		return nil, err
	}
	e := DefaultShadowExtent
	l.Projection = mgl32.Ortho(-e, e, -e, e, 0.1, 2*l.Distance)
	return l, nil
}

func (l *DirectionalLight) SetDirection(direction mgl32.Vec3) error {
	if direction.Len() == 0 {
		return ErrZeroDirection
	}
	l.Direction = direction.Normalize()
	return nil
}

// View looks from -Direction*Distance toward the origin.
func (l *DirectionalLight) View() mgl32.Mat4 {
	dir := l.Direction.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	eye := dir.Mul(-l.Distance)
	return mgl32.LookAtV(eye, mgl32.Vec3{}, up)
}

// Matrix maps world space into the light's clip space.
func (l *DirectionalLight) Matrix() mgl32.Mat4 {
	return l.Projection.Mul4(l.View())
}

// UpdateProjection fits the orthographic box around the given world-space
// points (typically the camera frustum corners).
func (l *DirectionalLight) UpdateProjection(corners [8]mgl32.Vec3) {
	view := l.View()
	minV := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxV := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, c := range corners {
		p := view.Mul4x1(c.Vec4(1)).Vec3()
		for i := 0; i < 3; i++ {
			minV[i] = math32.Min(minV[i], p[i])
			maxV[i] = math32.Max(maxV[i], p[i])
		}
	}
	// view space looks down -Z, so near/far come from the negated z range
	near := -maxV[2] - shadowCasterMargin
	far := -minV[2]
	l.Projection = mgl32.Ortho(minV[0], maxV[0], minV[1], maxV[1], near, far)
}
