package neon

import (
	"fmt"
)

// PlatformWindowModule ensures a single shared GLFW window (WindowState) with
// an OpenGL 4.1 core context is created and made available as a resource.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// Zero sizes fall back to 1280x720 and an empty title to "neon-testbed".
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "neon-testbed"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
		VSync:  true,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if hasResource[WindowState](app) {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title, m.VSync)
	if err != nil {
		cmd.Exit(fmt.Errorf("platform window: %w", err))
		return
	}
	app.addResources(ws)
	app.Logger().Infof("OpenGL context: %s", ws.Renderer())

	app.UseSystem(
		System(windowSizeSystem).
			InStage(Prelude).
			RunAlways(),
	)
	app.UseSystem(
		System(windowSwapSystem).
			InStage(Finale).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(windowDestroySystem).
				InStage(Finale).
				InState(OnExit(app.finalState)),
		)
	}
}

func windowSizeSystem(s *WindowState) {
	s.pollSize()
}

func windowSwapSystem(s *WindowState, cmd *Commands) {
	s.windowGlfw.SwapBuffers()
	if s.ShouldClose() {
		cmd.Exit(nil)
	}
}

func windowDestroySystem(s *WindowState) {
	s.destroy()
}
