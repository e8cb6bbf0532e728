package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/neonlabs/neon/render/mesh"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	return img
}

func TestDecodeImage_PNG(t *testing.T) {
	img, err := DecodeImage(encodePNG(t, twoRows()), false)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Rect)
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, blue, img.RGBAAt(0, 1))
}

func TestDecodeImage_Flip(t *testing.T) {
	img, err := DecodeImage(encodePNG(t, twoRows()), true)
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
}

func TestDecodeImage_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, solid(3, 3, blue)))

	img, err := DecodeImage(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(2, 2))
}

func TestDecodeImage_NotAnImage(t *testing.T) {
	_, err := DecodeImage([]byte("#version 410 core\nvoid main() {}\n"), false)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = DecodeImage(nil, false)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoadImageOr(t *testing.T) {
	fsys := fstest.MapFS{
		"earth.png":  {Data: encodePNG(t, solid(2, 2, blue))},
		"broken.png": {Data: []byte("not really a png")},
	}
	fallback := func() *image.RGBA { return solid(1, 1, red) }

	img, substituted, err := LoadImageOr(fsys, "earth.png", false, fallback)
	require.NoError(t, err)
	assert.False(t, substituted)
	assert.Equal(t, blue, img.RGBAAt(0, 0))

	img, substituted, err = LoadImageOr(fsys, "mars.png", false, fallback)
	require.NoError(t, err)
	assert.True(t, substituted)
	assert.Equal(t, red, img.RGBAAt(0, 0))

	_, _, err = LoadImageOr(fsys, "broken.png", false, fallback)
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = LoadImageOr(fsys, "mars.png", false, nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadCubeMap(t *testing.T) {
	fsys := fstest.MapFS{}
	paths := SkyboxPaths("skybox")
	for _, p := range paths {
		fsys[p] = &fstest.MapFile{Data: encodePNG(t, solid(4, 4, blue))}
	}

	faces, err := LoadCubeMap(fsys, paths)
	require.NoError(t, err)
	for _, f := range faces {
		assert.Equal(t, 4, f.Rect.Dx())
	}

	fsys["skybox/zneg.png"] = &fstest.MapFile{Data: encodePNG(t, solid(4, 2, blue))}
	_, err = LoadCubeMap(fsys, paths)
	assert.ErrorIs(t, err, ErrFaceSize)
	assert.Contains(t, err.Error(), "zneg.png")

	delete(fsys, "skybox/ypos.png")
	_, err = LoadCubeMap(fsys, paths)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSkyboxPaths(t *testing.T) {
	paths := SkyboxPaths("assets/skybox")
	assert.Equal(t, "assets/skybox/xpos.png", paths[0])
	assert.Equal(t, "assets/skybox/zneg.png", paths[5])
}

func TestFitHeightmap(t *testing.T) {
	img := solid(512, 256, blue)
	fit := FitHeightmap(img, 128)
	assert.Equal(t, 128, fit.Rect.Dx())
	assert.Equal(t, 64, fit.Rect.Dy())

	assert.Same(t, img, FitHeightmap(img, 0))
	assert.Same(t, img, FitHeightmap(img, 1024))
}

func TestLoadHeightmap(t *testing.T) {
	fsys := fstest.MapFS{"hm.png": {Data: encodePNG(t, Hill(64, 200))}}
	img, err := LoadHeightmap(fsys, "hm.png", 32)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Rect.Dx())
}

func TestPlaceholders(t *testing.T) {
	c := Checker(4, 2, red, blue)
	assert.Equal(t, red, c.RGBAAt(0, 0))
	assert.Equal(t, blue, c.RGBAAt(2, 0))
	assert.Equal(t, red, c.RGBAAt(2, 2))

	sky := SkyGradient(8)
	assert.NoError(t, CheckFaces(sky, SkyboxFaces))
	assert.Equal(t, skyZenith, sky[2].RGBAAt(3, 3))
	assert.Equal(t, skyZenith, sky[0].RGBAAt(0, 0))
	assert.Equal(t, skyGround, sky[0].RGBAAt(0, 7))

	hill := Hill(33, 200)
	assert.Equal(t, uint8(200), hill.RGBAAt(16, 16).B)
	assert.Equal(t, uint8(0), hill.RGBAAt(0, 0).B)
	assert.Less(t, hill.RGBAAt(8, 16).B, uint8(200))
}

func cellHasInk(img *image.RGBA, r rune) bool {
	col, row := int(r)%mesh.GlyphsPerRow, int(r)/mesh.GlyphsPerRow
	for y := row * AtlasCell; y < (row+1)*AtlasCell; y++ {
		for x := col * AtlasCell; x < (col+1)*AtlasCell; x++ {
			if img.RGBAAt(x, y).A > 0 {
				return true
			}
		}
	}
	return false
}

func TestFontAtlas(t *testing.T) {
	atlas := FontAtlas()
	assert.Equal(t, AtlasCell*mesh.GlyphsPerRow, atlas.Rect.Dx())
	assert.Equal(t, atlas.Rect.Dx(), atlas.Rect.Dy())

	for _, r := range "AZaz09?#" {
		assert.True(t, cellHasInk(atlas, r), "glyph %q is empty", r)
	}
	assert.False(t, cellHasInk(atlas, ' '))
	assert.False(t, cellHasInk(atlas, 0x7f))
}

func TestLoadFontAtlas(t *testing.T) {
	fsys := fstest.MapFS{
		"font.png": {Data: encodePNG(t, solid(128, 128, red))},
		"odd.png":  {Data: encodePNG(t, solid(100, 100, red))},
	}
	img, err := LoadFontAtlas(fsys, "font.png")
	require.NoError(t, err)
	assert.Equal(t, 128, img.Rect.Dx())

	_, err = LoadFontAtlas(fsys, "odd.png")
	assert.Error(t, err)
}

type fakeResource struct {
	name string
	log  *[]string
}

func (f *fakeResource) Destroy() { *f.log = append(*f.log, f.name) }

func TestAssetServer(t *testing.T) {
	var destroyed []string
	server := NewAssetServer()

	sky := server.Track("skybox", &fakeResource{name: "skybox", log: &destroyed})
	earth := server.Track("earth", &fakeResource{name: "earth", log: &destroyed})
	server.Track("font", &fakeResource{name: "font", log: &destroyed})
	assert.Equal(t, 3, server.Len())
	assert.NotEqual(t, sky, earth)

	r, ok := server.Get(earth)
	require.True(t, ok)
	assert.Equal(t, "earth", r.(*fakeResource).name)

	assert.True(t, server.Release(earth))
	assert.False(t, server.Release(earth))
	assert.Equal(t, []string{"earth"}, destroyed)
	_, ok = server.Get(earth)
	assert.False(t, ok)

	server.ReleaseAll()
	assert.Equal(t, []string{"earth", "font", "skybox"}, destroyed)
	assert.Equal(t, 0, server.Len())
}
