package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/mesh"
)

type PlanetOptions struct {
	Radius   float32
	Stacks   int
	Sectors  int
	Texture  *image.RGBA
	Orbit    core.Orbit
	Emissive float32
}

// Planet is a textured sphere that follows its Orbit.
type Planet struct {
	geometry
	texture gfx.Texture

	Orbit    core.Orbit
	Emissive float32

	local core.BoundingSphere
	world mgl32.Mat4
}

func NewPlanet(opts PlanetOptions) (*Planet, error) {
	m, err := mesh.Sphere(opts.Radius, opts.Stacks, opts.Sectors)
	if err != nil {
		return nil, err
	}

	p := &Planet{
		Orbit:    opts.Orbit,
		Emissive: opts.Emissive,
		local:    m.Bounds(),
	}
	if err := p.upload(m); err != nil {
		return nil, fmt.Errorf("planet geometry: %w", err)
	}
	if err := p.texture.Create(opts.Texture); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("planet texture: %w", err)
	}
	p.world = p.Orbit.World()
	return p, nil
}

func (p *Planet) Advance(dt float32) {
	p.Orbit.Advance(dt)
	p.world = p.Orbit.World()
}

func (p *Planet) World() mgl32.Mat4 { return p.world }

func (p *Planet) Bounds() core.BoundingSphere {
	return p.local.Transform(p.world)
}

func (p *Planet) Render(f *Frame) {
	prog := &f.Programs.Sphere
	prog.Bind()
	setLit(prog, f, p.world)
	prog.SetFloat("emissive", p.Emissive)

	p.texture.Bind(DiffuseUnit)
	f.Sampler.Bind(DiffuseUnit)
	p.draw()
}

func (p *Planet) RenderShadow(f *Frame) {
	renderShadow(f, &p.geometry, p.world)
}

func (p *Planet) Destroy() {
	p.geometry.Destroy()
	p.texture.Destroy()
}
