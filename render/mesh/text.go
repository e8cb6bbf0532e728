package mesh

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GlyphsPerRow is the side of the square glyph grid of a font atlas. The
// glyph for character c lives in cell (c%16, c/16).
const GlyphsPerRow = 16

type TextVertex struct {
	Pos mgl32.Vec2
	UV  mgl32.Vec2
}

const TextVertexSize = int(unsafe.Sizeof(TextVertex{}))

// GlyphCell returns the atlas cell of r. Characters outside printable
// ASCII map to '?'.
func GlyphCell(r rune) (col, row int) {
	if r < ' ' || r > '~' {
		r = '?'
	}
	return int(r) % GlyphsPerRow, int(r) / GlyphsPerRow
}

// TextQuads appends two triangles per glyph of text, starting at (x, y) in
// screen pixels (y down). Each glyph is size x size pixels.
func TextQuads(dst []TextVertex, x, y, size float32, text string) []TextVertex {
	const uv = 1.0 / GlyphsPerRow

	px, py := x, y
	for _, r := range text {
		if r == '\n' {
			px = x
			py += size
			continue
		}

		col, row := GlyphCell(r)
		u := float32(col) * uv
		v := float32(row) * uv

		dst = append(dst,
			TextVertex{Pos: mgl32.Vec2{px, py}, UV: mgl32.Vec2{u, v}},
			TextVertex{Pos: mgl32.Vec2{px + size, py}, UV: mgl32.Vec2{u + uv, v}},
			TextVertex{Pos: mgl32.Vec2{px + size, py + size}, UV: mgl32.Vec2{u + uv, v + uv}},

			TextVertex{Pos: mgl32.Vec2{px + size, py + size}, UV: mgl32.Vec2{u + uv, v + uv}},
			TextVertex{Pos: mgl32.Vec2{px, py + size}, UV: mgl32.Vec2{u, v + uv}},
			TextVertex{Pos: mgl32.Vec2{px, py}, UV: mgl32.Vec2{u, v}},
		)
		px += size
	}
	return dst
}

func TextBytes(v []TextVertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*TextVertexSize)
}
