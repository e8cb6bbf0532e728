package mesh

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
)

const DefaultHeightScale float32 = 0.1

// Terrain is a heightmap grid mesh. Vertex (x, z) sits at index z*Width+x.
type Terrain struct {
	Mesh
	Width   int
	Depth   int
	Heights []float32
}

// ring of grid neighbours in winding order; consecutive pairs form the six
// triangles sharing a vertex in the (x,z)-(x+1,z+1) diagonal triangulation
var neighbourRing = [6][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 0}, {-1, -1}, {0, -1}}

// NewTerrain builds the terrain from the blue channel of the heightmap.
func NewTerrain(heightmap image.Image, scale float32) (*Terrain, error) {
	b := heightmap.Bounds()
	w, d := b.Dx(), b.Dy()
	if w < 2 || d < 2 {
		return nil, fmt.Errorf("%w: heightmap %dx%d, need at least 2x2", ErrInvalid, w, d)
	}

	t := &Terrain{
		Width:   w,
		Depth:   d,
		Heights: make([]float32, w*d),
	}
	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			t.Heights[z*w+x] = float32(blueAt(heightmap, b.Min.X+x, b.Min.Y+z)) * scale
		}
	}

	t.Vertices = make([]Vertex, 0, w*d)
	for z := 0; z < d; z++ {
		for x := 0; x < w; x++ {
			t.Vertices = append(t.Vertices, Vertex{
				Position: t.point(x, z),
				TexCoord: mgl32.Vec2{float32(x) / float32(w), float32(z) / float32(d)},
				Normal:   t.normal(x, z),
			})
		}
	}

	t.Indices = make([]uint32, 0, 6*(w-1)*(d-1))
	for z := 0; z < d-1; z++ {
		for x := 0; x < w-1; x++ {
			i := uint32(z*w + x)
			uw := uint32(w)
			// counter-clockwise seen from above
			t.Indices = append(t.Indices,
				i, i+uw, i+uw+1,
				i+uw+1, i+1, i,
			)
		}
	}

	return t, nil
}

func blueAt(img image.Image, x, y int) uint8 {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.Pix[rgba.PixOffset(x, y)+2]
	}
	_, _, bl, _ := img.At(x, y).RGBA()
	return uint8(bl >> 8)
}

func (t *Terrain) clamp(x, z int) (int, int) {
	x = max(0, min(x, t.Width-1))
	z = max(0, min(z, t.Depth-1))
	return x, z
}

func (t *Terrain) point(x, z int) mgl32.Vec3 {
	x, z = t.clamp(x, z)
	return mgl32.Vec3{float32(x), t.Heights[z*t.Width+x], float32(z)}
}

func (t *Terrain) normal(x, z int) mgl32.Vec3 {
	p := t.point(x, z)
	var n mgl32.Vec3
	for i := range neighbourRing {
		a := neighbourRing[i]
		b := neighbourRing[(i+1)%len(neighbourRing)]
		pa := t.point(x+a[0], z+a[1]).Sub(p)
		pb := t.point(x+b[0], z+b[1]).Sub(p)
		n = n.Add(pb.Cross(pa))
	}
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// Bounds returns a sphere around the whole grid in local space.
func (t *Terrain) Bounds() core.BoundingSphere {
	lo, hi := t.Heights[0], t.Heights[0]
	for _, h := range t.Heights {
		lo = math32.Min(lo, h)
		hi = math32.Max(hi, h)
	}
	half := mgl32.Vec3{float32(t.Width-1) / 2, (hi - lo) / 2, float32(t.Depth-1) / 2}
	return core.BoundingSphere{
		Center: mgl32.Vec3{half.X(), lo + half.Y(), half.Z()},
		Radius: half.Len(),
	}
}

// HeightAt bilinearly samples the terrain height in local grid space.
// Coordinates outside the grid clamp to the border.
func (t *Terrain) HeightAt(x, z float32) float32 {
	x = math32.Max(0, math32.Min(x, float32(t.Width-1)))
	z = math32.Max(0, math32.Min(z, float32(t.Depth-1)))

	x0, z0 := int(x), int(z)
	x1, z1 := t.clamp(x0+1, z0+1)
	fx, fz := x-float32(x0), z-float32(z0)

	h00 := t.Heights[z0*t.Width+x0]
	h10 := t.Heights[z0*t.Width+x1]
	h01 := t.Heights[z1*t.Width+x0]
	h11 := t.Heights[z1*t.Width+x1]

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fz
}
