package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/gfx"
)

const DefaultShadowMapSize = 2048

type RendererOptions struct {
	Width  int
	Height int

	ShadowMapSize int
	// FitShadows refits the light volume to the near ShadowDistance of the
	// camera frustum every frame instead of using a fixed box.
	FitShadows     bool
	ShadowDistance float32

	// Offscreen renders the lit pass into a framebuffer that is blitted to
	// the window afterwards.
	Offscreen  bool
	ClearColor mgl32.Vec4
}

// Renderer runs the per-frame passes: shadow depth, skybox, lit scene, text.
type Renderer struct {
	opts RendererOptions

	shadow    gfx.Framebuffer
	offscreen gfx.Framebuffer
	sampler   gfx.Sampler

	width, height int
}

func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.ShadowMapSize <= 0 {
		opts.ShadowMapSize = DefaultShadowMapSize
	}
	if opts.ShadowDistance <= 0 {
		opts.ShadowDistance = core.DefaultShadowDistance
	}

	r := &Renderer{opts: opts, width: opts.Width, height: opts.Height}
	size := opts.ShadowMapSize
	if err := r.shadow.Create(size, size, nil, gfx.D32); err != nil {
		return nil, fmt.Errorf("shadow map: %w", err)
	}
	if opts.Offscreen {
		if err := r.offscreen.Create(opts.Width, opts.Height, []gfx.Format{gfx.RGBA8}, gfx.D32); err != nil {
			r.Destroy()
			return nil, fmt.Errorf("offscreen target: %w", err)
		}
	}
	if err := r.sampler.Create(gfx.Linear, gfx.ClampToEdge, gfx.ClampToEdge); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("scene sampler: %w", err)
	}
	return r, nil
}

// Sampler is the linear clamp sampler drawables sample their textures with.
func (r *Renderer) Sampler() *gfx.Sampler { return &r.sampler }

// Resize follows the window's framebuffer size.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.width, r.height = width, height
	if r.offscreen.Valid() {
		return r.offscreen.Resize(width, height)
	}
	return nil
}

// Render draws one frame. sky and hud may be nil.
func (r *Renderer) Render(f *Frame, sc *Scene, sky *Skybox, hud *BitmapFont) (Stats, error) {
	if f.Sampler == nil {
		f.Sampler = &r.sampler
	}
	if r.opts.FitShadows {
		vp := f.Camera.ClippedProjection(r.opts.ShadowDistance).Mul4(f.Camera.View)
		f.Light.UpdateProjection(core.FrustumCorners(vp))
	}

	// shadow pass: front faces culled to push acne onto back faces
	r.shadow.Bind()
	gfx.SetDepthTest(true)
	gfx.ClearDepth()
	gfx.SetCulling(gfx.CullFront)
	sc.RenderShadows(f)

	if r.offscreen.Valid() {
		r.offscreen.Bind()
	} else {
		r.shadow.Unbind(r.width, r.height)
	}
	gfx.Clear(r.opts.ClearColor)

	if sky != nil {
		sky.Render(f)
	}

	gfx.SetDepthTest(true)
	gfx.SetCulling(gfx.CullBack)
	if err := r.shadow.BindAsDepth(ShadowUnit); err != nil {
		return Stats{}, err
	}
	gfx.UnbindSampler(ShadowUnit)
	stats := sc.Render(f)

	var err error
	if hud != nil {
		err = hud.Flush(f)
	}

	if r.offscreen.Valid() {
		r.offscreen.Unbind(r.width, r.height)
		if blitErr := r.offscreen.Blit(0, 0, r.width, r.height); blitErr != nil && err == nil {
			err = blitErr
		}
	}
	return stats, err
}

func (r *Renderer) Destroy() {
	r.shadow.Destroy()
	r.offscreen.Destroy()
	r.sampler.Destroy()
}
