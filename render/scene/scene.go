// Package scene holds the drawables of the testbed and the passes that
// render them: a depth-only shadow pass from the directional light and a
// frustum-culled lit pass from the camera.
package scene

import (
	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/gfx"
)

// Texture units shared by the lit programs.
const (
	DiffuseUnit uint32 = 0
	ShadowUnit  uint32 = 1
)

// Frame is what a drawable needs to render one pass.
type Frame struct {
	Camera   *core.FpsCamera
	Light    *core.DirectionalLight
	Programs *Programs
	Sampler  *gfx.Sampler
}

type Drawable interface {
	// Bounds is the world-space bounding sphere used for culling.
	Bounds() core.BoundingSphere
	Render(f *Frame)
	RenderShadow(f *Frame)
}

// Animated drawables advance once per frame before rendering.
type Animated interface {
	Advance(dt float32)
}

type Node struct {
	Name        string
	Drawable    Drawable
	CastsShadow bool
}

type Stats struct {
	Drawn  int
	Culled int
}

// Scene is a flat list of nodes drawn in insertion order.
type Scene struct {
	nodes   []Node
	visible []int
}

func (s *Scene) Add(name string, d Drawable, castsShadow bool) {
	s.nodes = append(s.nodes, Node{Name: name, Drawable: d, CastsShadow: castsShadow})
}

func (s *Scene) Nodes() []Node { return s.nodes }

func (s *Scene) Len() int { return len(s.nodes) }

// Find returns the drawable added under name.
func (s *Scene) Find(name string) (Drawable, bool) {
	for _, n := range s.nodes {
		if n.Name == name {
			return n.Drawable, true
		}
	}
	return nil, false
}

func (s *Scene) Advance(dt float32) {
	for _, n := range s.nodes {
		if a, ok := n.Drawable.(Animated); ok {
			a.Advance(dt)
		}
	}
}

// Cull returns the indices of the nodes whose bounds intersect frustum.
// The returned slice is reused by the next call.
func (s *Scene) Cull(frustum *core.Frustum) []int {
	s.visible = s.visible[:0]
	for i, n := range s.nodes {
		if frustum.IntersectsSphere(n.Drawable.Bounds()) {
			s.visible = append(s.visible, i)
		}
	}
	return s.visible
}

// Render draws every node inside the camera frustum.
func (s *Scene) Render(f *Frame) Stats {
	frustum := core.FrustumFromMatrix(f.Camera.ViewProjection())
	visible := s.Cull(&frustum)
	for _, i := range visible {
		s.nodes[i].Drawable.Render(f)
	}
	return Stats{Drawn: len(visible), Culled: len(s.nodes) - len(visible)}
}

// RenderShadows draws every shadow caster, including those outside the
// camera frustum.
func (s *Scene) RenderShadows(f *Frame) {
	for _, n := range s.nodes {
		if n.CastsShadow {
			n.Drawable.RenderShadow(f)
		}
	}
}
