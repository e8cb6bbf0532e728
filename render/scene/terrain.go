package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/mesh"
)

type TerrainOptions struct {
	Heightmap   image.Image
	HeightScale float32
	Texture     *image.RGBA
	Position    mgl32.Vec3
}

// Terrain is a heightmap grid placed at Position.
type Terrain struct {
	geometry
	texture gfx.Texture

	Mesh     *mesh.Terrain
	Position mgl32.Vec3
}

func NewTerrain(opts TerrainOptions) (*Terrain, error) {
	m, err := mesh.NewTerrain(opts.Heightmap, opts.HeightScale)
	if err != nil {
		return nil, err
	}

	t := &Terrain{Mesh: m, Position: opts.Position}
	if err := t.upload(&m.Mesh); err != nil {
		return nil, fmt.Errorf("terrain geometry: %w", err)
	}
	if err := t.texture.Create(opts.Texture); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("terrain texture: %w", err)
	}
	return t, nil
}

func (t *Terrain) World() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
}

func (t *Terrain) Bounds() core.BoundingSphere {
	return t.Mesh.Bounds().Transform(t.World())
}

// HeightAt samples the terrain surface under world position (x, z). ok is
// false when (x, z) lies outside the grid.
func (t *Terrain) HeightAt(x, z float32) (h float32, ok bool) {
	lx, lz := x-t.Position.X(), z-t.Position.Z()
	if lx < 0 || lz < 0 || lx > float32(t.Mesh.Width-1) || lz > float32(t.Mesh.Depth-1) {
		return 0, false
	}
	return t.Mesh.HeightAt(lx, lz) + t.Position.Y(), true
}

func (t *Terrain) Render(f *Frame) {
	prog := &f.Programs.Terrain
	prog.Bind()
	setLit(prog, f, t.World())

	t.texture.Bind(DiffuseUnit)
	f.Sampler.Bind(DiffuseUnit)
	t.draw()
}

func (t *Terrain) RenderShadow(f *Frame) {
	renderShadow(f, &t.geometry, t.World())
}

func (t *Terrain) Destroy() {
	t.geometry.Destroy()
	t.texture.Destroy()
}
