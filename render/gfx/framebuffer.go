package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// MaxColorAttachments bounds the color targets of one framebuffer.
const MaxColorAttachments = 4

// Framebuffer is an offscreen render target made of texture attachments.
// A framebuffer without color formats is depth only and suits shadow maps.
type Framebuffer struct {
	id     uint32
	width  int
	height int
	colors []Texture
	depth  Texture

	colorFormats []Format
	depthFormat  Format
}

func validateFormats(width, height int, colors []Format, depth Format) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("framebuffer: %w: size %dx%d", ErrInvalid, width, height)
	}
	if len(colors) > MaxColorAttachments {
		return fmt.Errorf("framebuffer: %w: %d color attachments", ErrInvalid, len(colors))
	}
	for i, c := range colors {
		if !c.IsColor() {
			return fmt.Errorf("framebuffer: %w: color attachment %d has format %s", ErrInvalid, i, c)
		}
	}
	if depth != FormatNone && !depth.IsDepth() {
		return fmt.Errorf("framebuffer: %w: depth format %s", ErrInvalid, depth)
	}
	if len(colors) == 0 && depth == FormatNone {
		return fmt.Errorf("framebuffer: %w: no attachments", ErrInvalid)
	}
	return nil
}

// Create builds the framebuffer and its attachment textures. On failure
// everything created so far is released.
func (f *Framebuffer) Create(width, height int, colorFormats []Format, depthFormat Format) error {
	if f.Valid() {
		return ErrAlreadyCreated
	}
	if err := validateFormats(width, height, colorFormats, depthFormat); err != nil {
		return err
	}

	f.width, f.height = width, height
	f.colorFormats = append([]Format(nil), colorFormats...)
	f.depthFormat = depthFormat
	f.colors = make([]Texture, len(colorFormats))

	gl.GenFramebuffers(1, &f.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	drawBuffers := make([]uint32, 0, len(colorFormats))
	for i, format := range colorFormats {
		if err := f.colors[i].CreateColor(width, height, format); err != nil {
			f.Destroy()
			return fmt.Errorf("framebuffer color %d: %w", i, err)
		}
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, f.colors[i].ID(), 0)
		drawBuffers = append(drawBuffers, attachment)
	}
	if len(drawBuffers) > 0 {
		gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])
	} else {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}

	if depthFormat != FormatNone {
		if err := f.depth.CreateDepth(width, height, depthFormat); err != nil {
			f.Destroy()
			return fmt.Errorf("framebuffer depth: %w", err)
		}
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, f.depth.ID(), 0)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		f.Destroy()
		return fmt.Errorf("framebuffer: %w: incomplete: %s", ErrGL, EnumName(status))
	}
	if err := CheckError("framebuffer create"); err != nil {
		f.Destroy()
		return err
	}
	return nil
}

// Resize recreates the attachments at the new size with the same formats.
func (f *Framebuffer) Resize(width, height int) error {
	if !f.Valid() {
		return fmt.Errorf("framebuffer resize: %w", ErrInvalid)
	}
	if width == f.width && height == f.height {
		return nil
	}
	colors, depth := f.colorFormats, f.depthFormat
	f.Destroy()
	return f.Create(width, height, colors, depth)
}

func (f *Framebuffer) Destroy() {
	for i := range f.colors {
		f.colors[i].Destroy()
	}
	f.colors = nil
	f.depth.Destroy()
	if f.id != 0 {
		gl.DeleteFramebuffers(1, &f.id)
		f.id = 0
	}
}

func (f *Framebuffer) Valid() bool { return f.id != 0 }

func (f *Framebuffer) Size() (int, int) { return f.width, f.height }

// Bind directs drawing into the framebuffer and sets the viewport to it.
func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.id)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
}

// Unbind restores the default framebuffer with a width x height viewport.
func (f *Framebuffer) Unbind(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BindAsDepth binds the depth attachment as a texture on unit.
func (f *Framebuffer) BindAsDepth(unit uint32) error {
	if !f.depth.Valid() {
		return fmt.Errorf("framebuffer depth: %w", ErrInvalid)
	}
	f.depth.Bind(unit)
	return nil
}

// BindAsColor binds color attachment index as a texture on unit.
func (f *Framebuffer) BindAsColor(unit uint32, index int) error {
	if index < 0 || index >= len(f.colors) || !f.colors[index].Valid() {
		return fmt.Errorf("framebuffer color %d: %w", index, ErrInvalid)
	}
	f.colors[index].Bind(unit)
	return nil
}

func (f *Framebuffer) DepthTexture() *Texture { return &f.depth }

// Blit copies color attachment 0 into the (x, y, width, height) rectangle
// of the default framebuffer.
func (f *Framebuffer) Blit(x, y, width, height int) error {
	if !f.Valid() || len(f.colors) == 0 {
		return fmt.Errorf("framebuffer blit: %w", ErrInvalid)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.id)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(f.width), int32(f.height),
		int32(x), int32(y), int32(x+width), int32(y+height),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return CheckError("framebuffer blit")
}
