package assets

import (
	"fmt"
	"image"
	"io/fs"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/neonlabs/neon/render/mesh"
)

// AtlasCell is the pixel size of one glyph cell in the generated atlas.
const AtlasCell = 16

// FontAtlas rasterizes the printable ASCII range of the built-in 7x13
// face into a 16x16 grid addressed by character code.
func FontAtlas() *image.RGBA {
	const side = AtlasCell * mesh.GlyphsPerRow
	atlas := image.NewRGBA(image.Rect(0, 0, side, side))

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}

	// center the glyph box in its cell
	padX := (AtlasCell - face.Advance) / 2
	padY := (AtlasCell - face.Height) / 2

	for r := rune(' '); r <= '~'; r++ {
		col, row := mesh.GlyphCell(r)
		d.Dot = fixed.P(col*AtlasCell+padX, row*AtlasCell+padY+face.Ascent)
		d.DrawString(string(r))
	}
	return atlas
}

// LoadFontAtlas loads a prebuilt atlas. It must be square with a side
// divisible by the 16 glyph cells.
func LoadFontAtlas(fsys fs.FS, name string) (*image.RGBA, error) {
	img, err := LoadImage(fsys, name, false)
	if err != nil {
		return nil, err
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != h || w%mesh.GlyphsPerRow != 0 {
		return nil, fmt.Errorf("font atlas %s: %dx%d is not a square grid of %d cells", name, w, h, mesh.GlyphsPerRow)
	}
	return img, nil
}
