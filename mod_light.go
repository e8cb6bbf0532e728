package neon

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
)

const DefaultLightTurnSpeed float32 = 2

var (
	lightTint  = mgl32.Vec4{1, 0.5, 0.5, 1}
	lightWhite = mgl32.Vec4{1, 1, 1, 1}
)

// LightControlModule installs the directional light and its keyboard
// controls. The arrow keys rotate the direction, Q tints the light red and
// E restores white. Escape quits the app.
type LightControlModule struct {
	Color     mgl32.Vec4
	Direction mgl32.Vec3
	TurnSpeed float32
}

type LightController struct {
	TurnSpeed float32
}

func (m LightControlModule) Install(app *App, cmd *Commands) {
	light, err := core.NewDirectionalLight(m.Color, m.Direction)
	if err != nil {
		cmd.Exit(fmt.Errorf("light: %w", err))
		return
	}
	ctl := &LightController{TurnSpeed: m.TurnSpeed}
	if ctl.TurnSpeed <= 0 {
		ctl.TurnSpeed = DefaultLightTurnSpeed
	}
	cmd.AddResources(light, ctl)

	app.UseSystem(
		System(lightControlSystem).
			InStage(Update).
			RunAlways(),
	)
}

func lightControlSystem(input *Input, t *Time, light *core.DirectionalLight, ctl *LightController, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Exit(nil)
		return
	}
	ctl.Apply(light, input, t.Seconds())
}

// Apply changes light from this frame's key state.
func (ctl *LightController) Apply(light *core.DirectionalLight, input *Input, dt float32) {
	var roll, pitch float32
	if input.Pressed[KeyUp] {
		roll++
	}
	if input.Pressed[KeyDown] {
		roll--
	}
	if input.Pressed[KeyLeft] {
		pitch--
	}
	if input.Pressed[KeyRight] {
		pitch++
	}
	if roll != 0 || pitch != 0 {
		// Up/Down swing the light about Z, Left/Right about X
		step := ctl.TurnSpeed * dt
		rot := mgl32.Rotate3DX(pitch * step).Mul3(mgl32.Rotate3DZ(roll * step))
		// a zero direction keeps the previous one
		_ = light.SetDirection(rot.Mul3x1(light.Direction))
	}

	if input.Pressed[KeyQ] {
		light.Color = lightTint
	}
	if input.Pressed[KeyE] {
		light.Color = lightWhite
	}
}
