package gfx

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// SetCulling culls the given faces of counter-clockwise front-facing
// triangles.
func SetCulling(mode CullMode) {
	if mode == CullNone {
		gl.Disable(gl.CULL_FACE)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	if mode == CullFront {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
}

func SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

// SetAlphaBlend enables straight alpha blending for color and keeps the
// destination alpha additive.
func SetAlphaBlend(enabled bool) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE)
	gl.BlendEquationSeparate(gl.FUNC_ADD, gl.FUNC_ADD)
}

// Clear clears the bound framebuffer's color to c and its depth to 1.
func Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func ClearDepth() {
	gl.DepthMask(true)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// DrawArrays draws from the bound buffers without an index buffer.
func DrawArrays(primitive Primitive, start, count int) {
	gl.DrawArrays(uint32(primitive), int32(start), int32(count))
}
