package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/mesh"
)

// geometry is an uploaded indexed mesh in the shared Vertex layout.
type geometry struct {
	vertices gfx.VertexBuffer
	indices  gfx.IndexBuffer
	format   gfx.VertexFormat
}

func (g *geometry) upload(m *mesh.Mesh) error {
	if err := g.vertices.Create(len(m.Vertices)*mesh.VertexSize, m.VertexBytes()); err != nil {
		return err
	}
	if err := g.indices.CreateUint32(m.Indices); err != nil {
		g.vertices.Destroy()
		return err
	}
	if err := vertexLayout(&g.format); err != nil {
		g.Destroy()
		return err
	}
	return nil
}

// vertexLayout describes mesh.Vertex: position, texcoord, normal.
func vertexLayout(f *gfx.VertexFormat) error {
	if err := f.AddAttribute(0, 3, gfx.Float, false); err != nil {
		return err
	}
	if err := f.AddAttribute(1, 2, gfx.Float, false); err != nil {
		return err
	}
	return f.AddAttribute(2, 3, gfx.Float, false)
}

func (g *geometry) draw() {
	g.vertices.Bind()
	g.indices.Bind()
	g.format.Bind()
	g.indices.Render(gfx.Triangles, 0, g.indices.Count())
}

func (g *geometry) Destroy() {
	g.vertices.Destroy()
	g.indices.Destroy()
}

// setLit writes the uniforms shared by the lit programs.
func setLit(p *gfx.ShaderProgram, f *Frame, world mgl32.Mat4) {
	p.SetMat4("projection", f.Camera.Projection)
	p.SetMat4("view", f.Camera.View)
	p.SetMat4("world", world)
	p.SetMat4("light_matrix", f.Light.Matrix())
	p.SetVec3("light_direction", f.Light.Direction)
	p.SetVec4("light_color", f.Light.Color)
	p.SetVec3("camera_pos", f.Camera.EyePosition())
	p.SetInt("diffuse_map", int32(DiffuseUnit))
	p.SetInt("shadow_map", int32(ShadowUnit))
}

func renderShadow(f *Frame, g *geometry, world mgl32.Mat4) {
	p := &f.Programs.Shadow
	p.Bind()
	p.SetMat4("light_matrix", f.Light.Matrix())
	p.SetMat4("world", world)
	g.draw()
}
