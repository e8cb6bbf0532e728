package neon

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonlabs/neon/render/core"
)

func TestLightController_Direction(t *testing.T) {
	light, err := core.NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)
	ctl := &LightController{TurnSpeed: DefaultLightTurnSpeed}

	var input Input
	input.set(KeyUp, true)
	ctl.Apply(light, &input, 0.5)
	assertVec3Near(t, mgl32.Vec3{math32.Sin(1), -math32.Cos(1), 0}, light.Direction)

	input.set(KeyUp, false)
	ctl.Apply(light, &input, 0.5)
	assertVec3Near(t, mgl32.Vec3{math32.Sin(1), -math32.Cos(1), 0}, light.Direction)

	input.set(KeyLeft, true)
	ctl.Apply(light, &input, 0.1)
	assert.Greater(t, light.Direction.Y(), -math32.Cos(1), "left raises the direction")
	assert.Greater(t, light.Direction.Z(), float32(0))
	assert.InDelta(t, 1, light.Direction.Len(), 1e-5)
}

func TestLightController_SidewaysFromStraightDown(t *testing.T) {
	light, err := core.NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)
	ctl := &LightController{TurnSpeed: DefaultLightTurnSpeed}

	var input Input
	input.set(KeyRight, true)
	ctl.Apply(light, &input, 0.25)
	assertVec3Near(t, mgl32.Vec3{0, -math32.Cos(0.5), -math32.Sin(0.5)}, light.Direction)

	input.set(KeyRight, false)
	input.set(KeyLeft, true)
	ctl.Apply(light, &input, 0.25)
	assertVec3Near(t, mgl32.Vec3{0, -1, 0}, light.Direction)
}

func TestLightController_OppositeKeysCancel(t *testing.T) {
	light, err := core.NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)
	ctl := &LightController{TurnSpeed: DefaultLightTurnSpeed}

	var input Input
	input.set(KeyUp, true)
	input.set(KeyDown, true)
	input.set(KeyLeft, true)
	input.set(KeyRight, true)
	ctl.Apply(light, &input, 1)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, light.Direction)
}

func TestLightController_Tint(t *testing.T) {
	light, err := core.NewDirectionalLight(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)
	ctl := &LightController{TurnSpeed: DefaultLightTurnSpeed}

	var input Input
	input.set(KeyQ, true)
	ctl.Apply(light, &input, 0.016)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.5, 1}, light.Color)

	input.set(KeyQ, false)
	input.set(KeyE, true)
	ctl.Apply(light, &input, 0.016)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, light.Color)
}
