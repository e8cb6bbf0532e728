package scene

import (
	"fmt"
	"image"

	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/mesh"
)

// Skybox is a cube map drawn around the camera before anything else.
type Skybox struct {
	cubemap  gfx.Texture
	vertices gfx.VertexBuffer
	format   gfx.VertexFormat
	count    int
}

func NewSkybox(faces [gfx.CubeFaces]*image.RGBA) (*Skybox, error) {
	s := &Skybox{}
	if err := s.cubemap.CreateCubeMap(faces); err != nil {
		return nil, fmt.Errorf("skybox cube map: %w", err)
	}

	cube := mesh.SkyboxCube()
	data := mesh.Vec3Bytes(cube)
	if err := s.vertices.Create(len(data), data); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("skybox vertices: %w", err)
	}
	if err := s.format.AddAttribute(0, 3, gfx.Float, false); err != nil {
		s.Destroy()
		return nil, err
	}
	s.count = len(cube)
	return s, nil
}

// Render draws the sky with the camera translation removed. Depth testing
// and depth writes are off so the rest of the scene draws over it.
func (s *Skybox) Render(f *Frame) {
	gfx.SetDepthTest(false)
	gfx.SetDepthWrite(false)
	gfx.SetCulling(gfx.CullNone)

	prog := &f.Programs.Skybox
	prog.Bind()
	prog.SetMat4("projection", f.Camera.Projection)
	prog.SetMat4("view", f.Camera.SkyView())
	prog.SetInt("cubemap", int32(DiffuseUnit))

	s.vertices.Bind()
	s.format.Bind()
	s.cubemap.Bind(DiffuseUnit)
	f.Sampler.Bind(DiffuseUnit)
	gfx.DrawArrays(gfx.Triangles, 0, s.count)

	gfx.SetDepthWrite(true)
}

func (s *Skybox) Destroy() {
	s.cubemap.Destroy()
	s.vertices.Destroy()
}
