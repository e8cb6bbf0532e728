package neon

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyE
	KeyQ
	KeyR
	KeyS
	KeyW
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF5
	KeyShift
	KeyControl
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	moved bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

// set records the key state for this frame and derives the edge flags.
func (input *Input) set(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// moveMouse stores the cursor position. The first sample produces no delta.
func (input *Input) moveMouse(x, y float64) {
	if input.moved {
		input.MouseDeltaX = x - input.MouseX
		input.MouseDeltaY = y - input.MouseY
	}
	input.MouseX, input.MouseY = x, y
	input.moved = true
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.set(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.set(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.moveMouse(s.windowGlfw.GetCursorPos())

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
		if input.MouseCaptured {
			s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else {
			s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyE:       glfw.KeyE,
	KeyQ:       glfw.KeyQ,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF1:      glfw.KeyF1,
	KeyF2:      glfw.KeyF2,
	KeyF5:      glfw.KeyF5,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
