package neon

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
)

const (
	DefaultCameraSpeed     float32 = 50
	DefaultCameraTurnSpeed float32 = 5
	DefaultCameraClearance float32 = 2
)

// Ground is a surface the camera may not sink below.
type Ground interface {
	HeightAt(x, z float32) (float32, bool)
}

// FpsCameraModule installs the scene camera and the mouse and keyboard
// controller that flies it: W/S move along the view, A/D strafe, dragging
// with the right button turns, dragging with the middle button rolls.
type FpsCameraModule struct {
	Fov, Near, Far float32
	Position       mgl32.Vec3
	Speed          float32
	TurnSpeed      float32
}

// FpsController holds the controller tuning. While Ground is set the camera
// stays Clearance above it.
type FpsController struct {
	Speed     float32
	TurnSpeed float32
	Clearance float32
	Ground    Ground
}

func (m FpsCameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewFpsCamera()
	cam.SetPerspective(m.Fov, 16.0/9.0, m.Near, m.Far)
	if ws, ok := Resource[WindowState](app); ok && ws.Aspect() > 0 {
		cam.SetAspect(ws.Aspect())
	}
	cam.Position = m.Position
	cam.Update()

	ctl := &FpsController{Speed: m.Speed, TurnSpeed: m.TurnSpeed, Clearance: DefaultCameraClearance}
	if ctl.Speed <= 0 {
		ctl.Speed = DefaultCameraSpeed
	}
	if ctl.TurnSpeed <= 0 {
		ctl.TurnSpeed = DefaultCameraTurnSpeed
	}
	cmd.AddResources(cam, ctl)

	app.UseSystem(
		System(fpsCameraControlSystem).
			InStage(Update).
			RunAlways(),
	)
	if hasResource[WindowState](app) {
		app.UseSystem(
			System(fpsCameraResizeSystem).
				InStage(PreUpdate).
				RunAlways(),
		)
	}
}

func fpsCameraControlSystem(input *Input, t *Time, cam *core.FpsCamera, ctl *FpsController) {
	ctl.Apply(cam, input, t.Seconds())
}

// Apply moves and turns cam from this frame's input and updates its view.
// Mouse deltas are in pixels and turn by TurnSpeed degrees per pixel-second.
func (ctl *FpsController) Apply(cam *core.FpsCamera, input *Input, dt float32) {
	amount := ctl.Speed * dt

	if input.Pressed[KeyW] {
		cam.Forward(-amount)
	}
	if input.Pressed[KeyS] {
		cam.Forward(amount)
	}
	if input.Pressed[KeyA] {
		cam.Sidestep(-amount)
	}
	if input.Pressed[KeyD] {
		cam.Sidestep(amount)
	}

	dx := float32(input.MouseDeltaX)
	dy := float32(input.MouseDeltaY)
	turn := dt * ctl.TurnSpeed

	if input.Pressed[MouseButtonRight] || input.MouseCaptured {
		if dx != 0 {
			cam.RotateY(mgl32.DegToRad(dx) * turn)
		}
		if dy != 0 {
			cam.RotateX(mgl32.DegToRad(dy) * turn)
		}
	}
	if input.Pressed[MouseButtonMiddle] && dx != 0 {
		cam.RotateZ(mgl32.DegToRad(dx) * turn)
	}

	if ctl.Ground != nil {
		floor, ok := ctl.Ground.HeightAt(cam.Position.X(), cam.Position.Z())
		if ok && cam.Position.Y() < floor+ctl.Clearance {
			cam.Position[1] = floor + ctl.Clearance
		}
	}

	cam.Update()
}

func fpsCameraResizeSystem(s *WindowState, cam *core.FpsCamera) {
	if s.Resized && s.Aspect() > 0 {
		cam.SetAspect(s.Aspect())
	}
}
