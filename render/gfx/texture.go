package gfx

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Format is a render-target storage format.
type Format int

const (
	FormatNone Format = iota
	RGBA8
	RGBA16F
	D24
	D32
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case RGBA8:
		return "rgba8"
	case RGBA16F:
		return "rgba16f"
	case D24:
		return "d24"
	case D32:
		return "d32"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) IsDepth() bool { return f == D24 || f == D32 }

func (f Format) IsColor() bool { return f == RGBA8 || f == RGBA16F }

// glFormat returns the internal format, pixel format and pixel type used
// to allocate storage of f.
func (f Format) glFormat() (internal int32, format, xtype uint32, ok bool) {
	switch f {
	case RGBA8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case RGBA16F:
		return gl.RGBA16F, gl.RGBA, gl.FLOAT, true
	case D24:
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, true
	case D32:
		return gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, true
	}
	return 0, 0, 0, false
}

// CubeFaces is the number of cube-map faces, ordered +X, -X, +Y, -Y, +Z, -Z.
const CubeFaces = 6

// Texture is a 2D texture or a cube map.
type Texture struct {
	id     uint32
	target uint32
	width  int
	height int
	format Format
}

// Create uploads img as an RGBA8 2D texture with linear filtering.
func (t *Texture) Create(img *image.RGBA) error {
	if t.Valid() {
		return ErrAlreadyCreated
	}
	if img == nil || img.Rect.Empty() {
		return fmt.Errorf("texture create: %w: empty image", ErrInvalid)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	t.begin(gl.TEXTURE_2D, w, h, RGBA8)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tightPixels(img)))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return t.end("texture create")
}

// CreateColor allocates an empty color render target.
func (t *Texture) CreateColor(width, height int, format Format) error {
	if !format.IsColor() {
		return fmt.Errorf("color texture: %w: format %s", ErrInvalid, format)
	}
	return t.createTarget(width, height, format, gl.LINEAR, gl.CLAMP_TO_EDGE)
}

// CreateDepth allocates a depth render target. Lookups outside the map
// read the far plane, so nothing outside a shadow map is shadowed.
func (t *Texture) CreateDepth(width, height int, format Format) error {
	if !format.IsDepth() {
		return fmt.Errorf("depth texture: %w: format %s", ErrInvalid, format)
	}
	if err := t.createTarget(width, height, format, gl.NEAREST, gl.CLAMP_TO_BORDER); err != nil {
		return err
	}
	border := [4]float32{1, 1, 1, 1}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (t *Texture) createTarget(width, height int, format Format, filter, wrap int32) error {
	if t.Valid() {
		return ErrAlreadyCreated
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("texture target: %w: size %dx%d", ErrInvalid, width, height)
	}

	internal, pf, pt, _ := format.glFormat()
	t.begin(gl.TEXTURE_2D, width, height, format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pf, pt, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	return t.end("texture target create")
}

// CreateCubeMap uploads six equally sized faces.
func (t *Texture) CreateCubeMap(faces [CubeFaces]*image.RGBA) error {
	if t.Valid() {
		return ErrAlreadyCreated
	}
	w, h, err := cubeFaceSize(faces)
	if err != nil {
		return err
	}

	t.begin(gl.TEXTURE_CUBE_MAP, w, h, RGBA8)
	for i, face := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tightPixels(face)))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	return t.end("cube map create")
}

func cubeFaceSize(faces [CubeFaces]*image.RGBA) (int, int, error) {
	if faces[0] == nil || faces[0].Rect.Empty() {
		return 0, 0, fmt.Errorf("cube map: %w: face 0 is empty", ErrInvalid)
	}
	w, h := faces[0].Rect.Dx(), faces[0].Rect.Dy()
	for i, face := range faces[1:] {
		if face == nil || face.Rect.Dx() != w || face.Rect.Dy() != h {
			return 0, 0, fmt.Errorf("cube map: %w: face %d does not match %dx%d", ErrInvalid, i+1, w, h)
		}
	}
	return w, h, nil
}

func (t *Texture) begin(target uint32, w, h int, format Format) {
	t.target = target
	t.width, t.height = w, h
	t.format = format
	gl.GenTextures(1, &t.id)
	gl.BindTexture(target, t.id)
}

func (t *Texture) end(op string) error {
	gl.BindTexture(t.target, 0)
	if err := CheckError(op); err != nil {
		t.Destroy()
		return err
	}
	return nil
}

// tightPixels returns the pixel rows of img without stride padding.
func tightPixels(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowLen := 4 * w
	start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y)
	if img.Stride == rowLen {
		return img.Pix[start : start+rowLen*h]
	}
	out := make([]byte, 0, rowLen*h)
	for y := 0; y < h; y++ {
		off := start + y*img.Stride
		out = append(out, img.Pix[off:off+rowLen]...)
	}
	return out
}

func (t *Texture) Destroy() {
	if !t.Valid() {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

func (t *Texture) Valid() bool { return t.id != 0 }

func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Size() (int, int) { return t.width, t.height }

func (t *Texture) Format() Format { return t.format }

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.target, t.id)
}
