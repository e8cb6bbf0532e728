package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectionalLight_RejectsZeroDirection(t *testing.T) {
	_, err := NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrZeroDirection)
}

func TestNewDirectionalLight_NormalizesDirection(t *testing.T) {
	l, err := NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -5, 0})
	require.NoError(t, err)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, l.Direction)

	assert.ErrorIs(t, l.SetDirection(mgl32.Vec3{}), ErrZeroDirection)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, l.Direction)
}

func TestDirectionalLight_ViewLooksAtOrigin(t *testing.T) {
	// straight down: the up vector must not be parallel to the direction
	l, err := NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)

	origin := l.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVec3(t, mgl32.Vec3{0, 0, -l.Distance}, origin.Vec3())

	clip := l.Matrix().Mul4x1(mgl32.Vec4{10, 0, -10, 1})
	for i := 0; i < 3; i++ {
		assert.LessOrEqual(t, absf(clip[i]/clip.W()), float32(1))
	}
}

func TestDirectionalLight_UpdateProjectionFitsCorners(t *testing.T) {
	l, err := NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{1, -1, 0.5})
	require.NoError(t, err)

	var corners [8]mgl32.Vec3
	i := 0
	for _, z := range []float32{-10, 10} {
		for _, y := range []float32{-10, 10} {
			for _, x := range []float32{-10, 10} {
				corners[i] = mgl32.Vec3{x + 100, y, z}
				i++
			}
		}
	}
	l.UpdateProjection(corners)

	m := l.Matrix()
	for _, c := range corners {
		p := m.Mul4x1(c.Vec4(1))
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, absf(p[axis]), float32(1+eps), "corner %v axis %d", c, axis)
		}
	}
}
