package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/mesh"
)

const (
	DefaultGlyphSize float32 = 16

	// initial vertex storage; the buffer grows on demand
	fontBufferSize = 512
)

// BitmapFont queues screen-space text and draws it in one call per frame.
type BitmapFont struct {
	atlas    gfx.Texture
	sampler  gfx.Sampler
	vertices gfx.VertexBuffer
	format   gfx.VertexFormat

	GlyphSize float32
	Color     mgl32.Vec4

	projection mgl32.Mat4
	queued     []mesh.TextVertex
}

// atlasGlyphSize draws glyphs at the atlas cell size, one texel per pixel.
func atlasGlyphSize(atlas image.Image) float32 {
	cell := atlas.Bounds().Dx() / mesh.GlyphsPerRow
	if cell <= 0 {
		return DefaultGlyphSize
	}
	return float32(cell)
}

func NewBitmapFont(atlas *image.RGBA, width, height int) (*BitmapFont, error) {
	b := &BitmapFont{
		GlyphSize: atlasGlyphSize(atlas),
		Color:     mgl32.Vec4{1, 1, 1, 1},
	}
	b.SetViewport(width, height)

	if err := b.atlas.Create(atlas); err != nil {
		return nil, fmt.Errorf("font atlas: %w", err)
	}
	if err := b.sampler.Create(gfx.Nearest, gfx.ClampToEdge, gfx.ClampToEdge); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("font sampler: %w", err)
	}
	if err := b.vertices.Create(fontBufferSize, nil); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("font vertices: %w", err)
	}
	if err := b.format.AddAttribute(0, 2, gfx.Float, false); err != nil {
		b.Destroy()
		return nil, err
	}
	if err := b.format.AddAttribute(1, 2, gfx.Float, false); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// SetViewport maps text coordinates to a width x height pixel screen with
// the origin at the top left.
func (b *BitmapFont) SetViewport(width, height int) {
	b.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderText queues text at pixel position (x, y).
func (b *BitmapFont) RenderText(x, y float32, text string) {
	b.queued = mesh.TextQuads(b.queued, x, y, b.GlyphSize, text)
}

func (b *BitmapFont) Queued() int { return len(b.queued) }

// Flush uploads and draws the queued text, then clears the queue.
func (b *BitmapFont) Flush(f *Frame) error {
	if len(b.queued) == 0 {
		return nil
	}
	defer func() { b.queued = b.queued[:0] }()

	if err := b.vertices.Update(mesh.TextBytes(b.queued)); err != nil {
		return err
	}

	gfx.SetDepthTest(false)
	gfx.SetCulling(gfx.CullNone)
	gfx.SetAlphaBlend(true)
	defer gfx.SetAlphaBlend(false)

	prog := &f.Programs.Font
	prog.Bind()
	prog.SetMat4("projection", b.projection)
	prog.SetVec4("text_color", b.Color)
	prog.SetInt("atlas", int32(DiffuseUnit))

	b.vertices.Bind()
	b.format.Bind()
	b.atlas.Bind(DiffuseUnit)
	b.sampler.Bind(DiffuseUnit)
	gfx.DrawArrays(gfx.Triangles, 0, len(b.queued))
	return nil
}

func (b *BitmapFont) Destroy() {
	b.atlas.Destroy()
	b.sampler.Destroy()
	b.vertices.Destroy()
}
