// Package assets loads the images the testbed renders from: textures,
// cube-map faces, heightmaps and the bitmap font atlas. It also keeps the
// registry of live GPU resources.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage = errors.New("assets: not an image")
	ErrFaceSize = errors.New("assets: cube map faces differ in size")
)

// DecodeImage sniffs data, decodes it and returns it as RGBA with the
// origin at (0, 0), flipped vertically when flip is set.
func DecodeImage(data []byte, flip bool) (*image.RGBA, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrNotImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.Extension, err)
	}

	if flip {
		return transform.FlipV(img), nil
	}
	return clone.AsRGBA(img), nil
}

// LoadImage reads and decodes path from fsys.
func LoadImage(fsys fs.FS, name string, flip bool) (*image.RGBA, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data, flip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

// LoadImageOr behaves like LoadImage but substitutes fallback() when the
// file does not exist. The second result reports the substitution.
func LoadImageOr(fsys fs.FS, name string, flip bool, fallback func() *image.RGBA) (*image.RGBA, bool, error) {
	img, err := LoadImage(fsys, name, flip)
	if err == nil {
		return img, false, nil
	}
	if fallback != nil && errors.Is(err, fs.ErrNotExist) {
		return fallback(), true, nil
	}
	return nil, false, err
}

// SkyboxFaces are the cube-map face file names in +X, -X, +Y, -Y, +Z, -Z
// order.
var SkyboxFaces = [6]string{"xpos.png", "xneg.png", "ypos.png", "yneg.png", "zpos.png", "zneg.png"}

// SkyboxPaths joins SkyboxFaces onto dir.
func SkyboxPaths(dir string) [6]string {
	var paths [6]string
	for i, f := range SkyboxFaces {
		paths[i] = path.Join(dir, f)
	}
	return paths
}

// LoadCubeMap loads six faces that must share one size.
func LoadCubeMap(fsys fs.FS, paths [6]string) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA
	for i, p := range paths {
		img, err := LoadImage(fsys, p, false)
		if err != nil {
			return faces, fmt.Errorf("cube map face %d: %w", i, err)
		}
		faces[i] = img
	}
	if err := CheckFaces(faces, paths); err != nil {
		return faces, err
	}
	return faces, nil
}

// CheckFaces verifies every face matches the size of the first.
func CheckFaces(faces [6]*image.RGBA, names [6]string) error {
	size := faces[0].Rect.Size()
	for i := 1; i < len(faces); i++ {
		if s := faces[i].Rect.Size(); s != size {
			return fmt.Errorf("%w: %s is %dx%d, %s is %dx%d",
				ErrFaceSize, names[i], s.X, s.Y, names[0], size.X, size.Y)
		}
	}
	return nil
}

// LoadHeightmap loads a heightmap. Maps wider or deeper than maxSize are
// resampled down to fit; maxSize <= 0 keeps the original resolution.
func LoadHeightmap(fsys fs.FS, name string, maxSize int) (*image.RGBA, error) {
	img, err := LoadImage(fsys, name, false)
	if err != nil {
		return nil, err
	}
	return FitHeightmap(img, maxSize), nil
}

// FitHeightmap scales img down, keeping its aspect, so neither side
// exceeds maxSize.
func FitHeightmap(img *image.RGBA, maxSize int) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(2, h*maxSize/w)
		w = maxSize
	} else {
		w = max(2, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}
