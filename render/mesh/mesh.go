// Package mesh builds the CPU-side geometry of the testbed: tessellated
// spheres, heightmap terrain, the skybox cube and bitmap-font quads.
// Nothing here touches OpenGL.
package mesh

import (
	"errors"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
)

var ErrInvalid = errors.New("mesh: invalid parameters")

// Vertex is the interleaved layout shared by spheres and terrain:
// position (location 0), texcoord (location 1), normal (location 2).
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds returns a sphere around the local origin enclosing every vertex.
func (m *Mesh) Bounds() core.BoundingSphere {
	var r float32
	for _, v := range m.Vertices {
		r = math32.Max(r, v.Position.Len())
	}
	return core.BoundingSphere{Radius: r}
}

// VertexBytes exposes the vertex slice as raw bytes for upload.
func (m *Mesh) VertexBytes() []byte {
	if len(m.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Vertices[0])), len(m.Vertices)*VertexSize)
}
