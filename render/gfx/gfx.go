// Package gfx wraps the OpenGL objects the renderer is built from: buffers,
// vertex formats, shader programs, textures, samplers and framebuffers.
//
// Every object is a small value holding its GL name, where 0 means the
// object was never created or has been destroyed. All calls need a current
// GL 4.1 core context on the calling goroutine's locked OS thread.
package gfx

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	ErrAlreadyCreated = errors.New("gfx: object already created")
	ErrInvalid        = errors.New("gfx: invalid object")
	ErrGL             = errors.New("gfx: gl error")
)

type Primitive uint32

const (
	Points        Primitive = gl.POINTS
	Lines         Primitive = gl.LINES
	LineStrip     Primitive = gl.LINE_STRIP
	Triangles     Primitive = gl.TRIANGLES
	TriangleStrip Primitive = gl.TRIANGLE_STRIP
)

// glGetError can queue several flags; more than this means a lost context.
const maxErrorDrain = 8

// CheckError reports the pending GL error flag, if any, as ErrGL tagged with
// op and the enum name. Remaining queued flags are drained.
func CheckError(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for i := 0; i < maxErrorDrain && gl.GetError() != gl.NO_ERROR; i++ {
	}
	return fmt.Errorf("%w: %s: %s", ErrGL, op, EnumName(code))
}

// EnumName names the GL error enums; anything else prints as hex.
func EnumName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.FRAMEBUFFER_UNDEFINED:
		return "GL_FRAMEBUFFER_UNDEFINED"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "GL_FRAMEBUFFER_UNSUPPORTED"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// Bytes reinterprets a slice of plain values as raw bytes for upload.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
