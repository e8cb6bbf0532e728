package neon

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the GLFW window with its current OpenGL context.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int

	// Framebuffer size in pixels; differs from the window size on HiDPI screens.
	FramebufferWidth  int
	FramebufferHeight int
	// Resized is set for the frame in which the framebuffer size changed.
	Resized bool

	vao uint32
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string, vsync bool) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	s := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
	}
	s.FramebufferWidth, s.FramebufferHeight = win.GetFramebufferSize()

	// core profile needs a bound VAO; formats rebind attributes on it per draw
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	return s, nil
}

// Renderer is the GL renderer string, for logging.
func (s *WindowState) Renderer() string {
	return gl.GoStr(gl.GetString(gl.RENDERER)) + " / " + gl.GoStr(gl.GetString(gl.VERSION))
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

// pollSize refreshes the sizes and the Resized flag.
func (s *WindowState) pollSize() {
	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
	w, h := s.windowGlfw.GetFramebufferSize()
	s.Resized = w != s.FramebufferWidth || h != s.FramebufferHeight
	s.FramebufferWidth, s.FramebufferHeight = w, h
}

// Aspect is the framebuffer aspect ratio, or 0 while minimized.
func (s *WindowState) Aspect() float32 {
	if s.FramebufferWidth <= 0 || s.FramebufferHeight <= 0 {
		return 0
	}
	return float32(s.FramebufferWidth) / float32(s.FramebufferHeight)
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	gl.DeleteVertexArrays(1, &s.vao)
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}
