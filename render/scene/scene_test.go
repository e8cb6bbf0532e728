package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/mesh"
	"github.com/neonlabs/neon/render/shaders"
)

type fakeDrawable struct {
	bounds   core.BoundingSphere
	rendered int
	shadowed int
	advanced float32
}

func (d *fakeDrawable) Bounds() core.BoundingSphere { return d.bounds }
func (d *fakeDrawable) Render(*Frame)               { d.rendered++ }
func (d *fakeDrawable) RenderShadow(*Frame)         { d.shadowed++ }

type fakeAnimated struct {
	fakeDrawable
}

func (d *fakeAnimated) Advance(dt float32) { d.advanced += dt }

func sphereAt(x, y, z, r float32) *fakeDrawable {
	return &fakeDrawable{bounds: core.BoundingSphere{Center: mgl32.Vec3{x, y, z}, Radius: r}}
}

func testFrame() *Frame {
	cam := core.NewFpsCamera()
	cam.SetPerspective(45, 16.0/9.0, 0.5, 10000)
	cam.Update()
	return &Frame{Camera: cam}
}

func TestScene_RenderCullsOutsideFrustum(t *testing.T) {
	var sc Scene
	ahead := sphereAt(0, 0, -50, 1)
	behind := sphereAt(0, 0, 50, 1)
	tooFar := sphereAt(0, 0, -20000, 10)
	straddling := sphereAt(0, 0, 10, 30)
	farLeft := sphereAt(-500, 0, -50, 5)

	sc.Add("ahead", ahead, true)
	sc.Add("behind", behind, true)
	sc.Add("too far", tooFar, false)
	sc.Add("straddling", straddling, true)
	sc.Add("far left", farLeft, true)

	stats := sc.Render(testFrame())
	assert.Equal(t, Stats{Drawn: 2, Culled: 3}, stats)
	assert.Equal(t, 1, ahead.rendered)
	assert.Equal(t, 1, straddling.rendered)
	assert.Zero(t, behind.rendered)
	assert.Zero(t, tooFar.rendered)
	assert.Zero(t, farLeft.rendered)
}

func TestScene_CameraTurnChangesVisibility(t *testing.T) {
	var sc Scene
	behind := sphereAt(0, 0, 50, 1)
	sc.Add("behind", behind, false)

	f := testFrame()
	assert.Equal(t, Stats{Drawn: 0, Culled: 1}, sc.Render(f))

	f.Camera.RotateY(mgl32.DegToRad(180))
	f.Camera.Update()
	assert.Equal(t, Stats{Drawn: 1, Culled: 0}, sc.Render(f))
}

func TestScene_ShadowsIgnoreCulling(t *testing.T) {
	var sc Scene
	behind := sphereAt(0, 0, 50, 1)
	receiverOnly := sphereAt(0, 0, -50, 1)
	sc.Add("behind", behind, true)
	sc.Add("receiver", receiverOnly, false)

	sc.RenderShadows(testFrame())
	assert.Equal(t, 1, behind.shadowed)
	assert.Zero(t, receiverOnly.shadowed)
}

func TestScene_AdvanceOnlyAnimated(t *testing.T) {
	var sc Scene
	moving := &fakeAnimated{}
	still := sphereAt(0, 0, 0, 1)
	sc.Add("moving", moving, true)
	sc.Add("still", still, true)

	sc.Advance(0.25)
	sc.Advance(0.25)
	assert.InDelta(t, 0.5, moving.advanced, 1e-6)
	assert.Equal(t, 2, sc.Len())

	d, ok := sc.Find("moving")
	require.True(t, ok)
	assert.Same(t, moving, d)
	_, ok = sc.Find("pluto")
	assert.False(t, ok)
}

func TestScene_CullReusesBuffer(t *testing.T) {
	var sc Scene
	sc.Add("a", sphereAt(0, 0, -10, 1), false)
	sc.Add("b", sphereAt(0, 0, 10, 1), false)

	frustum := core.FrustumFromMatrix(testFrame().Camera.ViewProjection())
	assert.Equal(t, []int{0}, sc.Cull(&frustum))
	assert.Equal(t, []int{0}, sc.Cull(&frustum))
}

func TestPrograms_EntriesMatchShaderSet(t *testing.T) {
	var p Programs
	entries := p.entries()
	require.Len(t, entries, len(shaders.All()))
	for i, e := range entries {
		assert.Equal(t, shaders.All()[i].Name, e.src.Name)
		assert.NotNil(t, e.prog)
	}
	assert.Same(t, &p.Shadow, entries[3].prog)
}

func TestTerrain_HeightAtWorldPosition(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	img.SetGray(1, 1, color.Gray{Y: 200})
	m, err := mesh.NewTerrain(img, 0.1)
	require.NoError(t, err)
	tr := &Terrain{Mesh: m, Position: mgl32.Vec3{-10, -5, 20}}

	h, ok := tr.HeightAt(-9, 21)
	require.True(t, ok)
	assert.InDelta(t, m.HeightAt(1, 1)-5, h, 1e-4)

	h, ok = tr.HeightAt(-10, 22)
	require.True(t, ok)
	assert.InDelta(t, m.HeightAt(0, 2)-5, h, 1e-4)

	_, ok = tr.HeightAt(-10.5, 21)
	assert.False(t, ok, "west of the grid")
	_, ok = tr.HeightAt(-9, 22.5)
	assert.False(t, ok, "south of the grid")
}

func TestAtlasGlyphSize(t *testing.T) {
	assert.Equal(t, float32(8), atlasGlyphSize(image.NewRGBA(image.Rect(0, 0, 128, 128))))
	assert.Equal(t, float32(16), atlasGlyphSize(image.NewRGBA(image.Rect(0, 0, 256, 256))))
	assert.Equal(t, DefaultGlyphSize, atlasGlyphSize(image.NewRGBA(image.Rect(0, 0, 4, 4))))
}
