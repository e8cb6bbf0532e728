package neon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"github.com/neonlabs/neon/render/assets"
	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/scene"
	"github.com/neonlabs/neon/render/shaders"
)

// TestbedModule builds the scene described by Config when the app enters
// StateRunning, renders it every frame and releases it on exit.
type TestbedModule struct {
	Config Config
}

// Testbed is the loaded scene and the GPU objects that draw it.
type Testbed struct {
	Config Config

	Assets   *assets.AssetServer
	Programs *scene.Programs
	Scene    scene.Scene
	Renderer *scene.Renderer
	Sky      *scene.Skybox
	Hud      *scene.BitmapFont
	Terrain  *scene.Terrain

	AssetFS  fs.FS
	ShaderFS fs.FS

	Stats    scene.Stats
	Profiler *Profiler
	loaded   bool
}

func (m TestbedModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, "testbed")

	cfg := m.Config
	tb := &Testbed{
		Config:   cfg,
		Assets:   assets.NewAssetServer(),
		Programs: &scene.Programs{},
		AssetFS:  os.DirFS(assetRoot(cfg.Assets.Root)),
		ShaderFS: shaders.FS(),
		Profiler: NewProfiler(),
	}
	if cfg.Assets.ShaderDir != "" {
		tb.ShaderFS = os.DirFS(cfg.Assets.ShaderDir)
	}
	cmd.AddResources(tb, tb.Programs)

	app.UseSystem(
		System(testbedLoadSystem).
			InStage(PreUpdate).
			InState(OnEnter(StateRunning)),
	)
	app.UseSystem(
		System(testbedAdvanceSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(testbedRenderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(testbedReleaseSystem).
			InStage(PostRender).
			InState(OnEnter(StateExiting)),
	)
}

func assetRoot(root string) string {
	if root == "" {
		return "."
	}
	return root
}

func testbedLoadSystem(tb *Testbed, ws *WindowState, ctl *FpsController, cmd *Commands) error {
	tb.Profiler.BeginScope("load")
	defer tb.Profiler.EndScope("load")
	if err := tb.Load(ws.FramebufferWidth, ws.FramebufferHeight, cmd.Logger()); err != nil {
		return fmt.Errorf("load testbed: %w", err)
	}
	if tb.Terrain != nil {
		ctl.Ground = tb.Terrain
	}
	cmd.Logger().Infof("scene ready: %d nodes, %d GPU resources", tb.Scene.Len(), tb.Assets.Len())
	return nil
}

func testbedAdvanceSystem(tb *Testbed, t *Time) {
	tb.Profiler.BeginScope("advance")
	tb.Scene.Advance(t.Seconds())
	tb.Profiler.EndScope("advance")
}

func testbedRenderSystem(tb *Testbed, ws *WindowState, cam *core.FpsCamera, light *core.DirectionalLight) error {
	if ws.Resized {
		if err := tb.Renderer.Resize(ws.FramebufferWidth, ws.FramebufferHeight); err != nil {
			return fmt.Errorf("resize: %w", err)
		}
		if tb.Hud != nil {
			tb.Hud.SetViewport(ws.FramebufferWidth, ws.FramebufferHeight)
		}
	}
	if ws.FramebufferWidth == 0 || ws.FramebufferHeight == 0 {
		// minimized
		return nil
	}

	frame := &scene.Frame{
		Camera:   cam,
		Light:    light,
		Programs: tb.Programs,
	}
	tb.Profiler.BeginScope("render")
	stats, err := tb.Renderer.Render(frame, &tb.Scene, tb.Sky, tb.Hud)
	tb.Profiler.EndScope("render")
	tb.Stats = stats
	return err
}

func testbedReleaseSystem(tb *Testbed, ctl *FpsController, cmd *Commands) {
	ctl.Ground = nil
	n := tb.Assets.Len()
	tb.Release()
	cmd.Logger().Debugf("released %d GPU resources", n)
}

// Load creates every GPU object of the scene. Objects created before a
// failure stay tracked by Assets and are freed by Release.
func (tb *Testbed) Load(width, height int, log Logger) error {
	if tb.loaded {
		return nil
	}
	cfg := tb.Config

	if err := tb.Programs.Load(tb.ShaderFS); err != nil {
		return err
	}
	tb.Assets.Track("programs", tb.Programs)

	r, err := scene.NewRenderer(scene.RendererOptions{
		Width:          width,
		Height:         height,
		ShadowMapSize:  cfg.Render.ShadowMapSize,
		FitShadows:     cfg.Render.FitShadows,
		ShadowDistance: cfg.Render.ShadowDistance,
		Offscreen:      cfg.Render.Offscreen,
		ClearColor:     vec4(cfg.Render.ClearColor),
	})
	if err != nil {
		return err
	}
	tb.Renderer = r
	tb.Assets.Track("renderer", r)

	if err := tb.loadSkybox(log); err != nil {
		return err
	}
	if err := tb.loadTerrain(log); err != nil {
		return err
	}
	for i, pc := range cfg.Planets {
		if err := tb.loadPlanet(i, pc, log); err != nil {
			return fmt.Errorf("planet %s: %w", pc.Name, err)
		}
	}
	if cfg.Render.ShowHud {
		if err := tb.loadFont(width, height, log); err != nil {
			return err
		}
	}

	tb.loaded = true
	return nil
}

// Release frees everything Load created, newest first.
func (tb *Testbed) Release() {
	tb.Assets.ReleaseAll()
	tb.Scene = scene.Scene{}
	tb.Renderer, tb.Sky, tb.Hud, tb.Terrain = nil, nil, nil, nil
	tb.loaded = false
}

func (tb *Testbed) placeholder(name string, log Logger) bool {
	if tb.Config.Assets.Placeholders {
		log.Warnf("%s not found, using a placeholder", name)
		return true
	}
	return false
}

func (tb *Testbed) loadSkybox(log Logger) error {
	if tb.Config.Assets.Skybox == "" {
		return nil
	}
	faces, err := assets.LoadCubeMap(tb.AssetFS, assets.SkyboxPaths(tb.Config.Assets.Skybox))
	if errors.Is(err, fs.ErrNotExist) && tb.placeholder("skybox "+tb.Config.Assets.Skybox, log) {
		faces, err = assets.SkyGradient(256), nil
	}
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}

	sky, err := scene.NewSkybox(faces)
	if err != nil {
		return err
	}
	tb.Sky = sky
	tb.Assets.Track("skybox", sky)
	return nil
}

func (tb *Testbed) loadTerrain(log Logger) error {
	tc := tb.Config.Terrain
	if !tc.Enabled {
		return nil
	}
	heightmap, err := assets.LoadHeightmap(tb.AssetFS, tc.Heightmap, tc.MaxSize)
	if errors.Is(err, fs.ErrNotExist) && tb.placeholder(tc.Heightmap, log) {
		heightmap, err = assets.Hill(min(tc.MaxSize, 256), 255), nil
	}
	if err != nil {
		return fmt.Errorf("terrain heightmap: %w", err)
	}

	texture, err := tb.loadTexture(tc.Texture, terrainColors, log)
	if err != nil {
		return fmt.Errorf("terrain texture: %w", err)
	}

	t, err := scene.NewTerrain(scene.TerrainOptions{
		Heightmap:   heightmap,
		HeightScale: tc.HeightScale,
		Texture:     texture,
		Position:    vec3(tc.Position),
	})
	if err != nil {
		return err
	}
	tb.Terrain = t
	tb.Assets.Track("terrain", t)
	tb.Scene.Add("terrain", t, true)
	return nil
}

func (tb *Testbed) loadPlanet(i int, pc PlanetConfig, log Logger) error {
	texture, err := tb.loadTexture(pc.Texture, planetColors[i%len(planetColors)], log)
	if err != nil {
		return err
	}

	var emissive float32
	if pc.Emissive {
		emissive = 1
	}
	p, err := scene.NewPlanet(scene.PlanetOptions{
		Radius:   pc.Radius,
		Stacks:   pc.Stacks,
		Sectors:  pc.Sectors,
		Texture:  texture,
		Orbit:    pc.Orbit(),
		Emissive: emissive,
	})
	if err != nil {
		return err
	}
	tb.Assets.Track(pc.Name, p)
	tb.Scene.Add(pc.Name, p, pc.CastsShadow)
	return nil
}

func (tb *Testbed) loadFont(width, height int, log Logger) error {
	var atlas *image.RGBA
	if tb.Config.Assets.Font != "" {
		var err error
		atlas, err = assets.LoadFontAtlas(tb.AssetFS, tb.Config.Assets.Font)
		if err != nil && !(errors.Is(err, fs.ErrNotExist) && tb.placeholder(tb.Config.Assets.Font, log)) {
			return fmt.Errorf("font: %w", err)
		}
	}
	if atlas == nil {
		atlas = assets.FontAtlas()
	}

	font, err := scene.NewBitmapFont(atlas, width, height)
	if err != nil {
		return err
	}
	tb.Hud = font
	tb.Assets.Track("font", font)
	return nil
}

type checkerColors [2]color.RGBA

var (
	terrainColors = checkerColors{{R: 60, G: 110, B: 50, A: 255}, {R: 90, G: 140, B: 70, A: 255}}
	planetColors  = []checkerColors{
		{{R: 255, G: 200, B: 60, A: 255}, {R: 255, G: 140, B: 20, A: 255}},
		{{R: 40, G: 90, B: 200, A: 255}, {R: 60, G: 160, B: 80, A: 255}},
		{{R: 200, G: 160, B: 120, A: 255}, {R: 150, G: 110, B: 80, A: 255}},
		{{R: 230, G: 210, B: 160, A: 255}, {R: 190, G: 170, B: 120, A: 255}},
	}
)

func (tb *Testbed) loadTexture(name string, colors checkerColors, log Logger) (*image.RGBA, error) {
	var fallback func() *image.RGBA
	if tb.Config.Assets.Placeholders {
		fallback = func() *image.RGBA { return assets.Checker(256, 8, colors[0], colors[1]) }
	}
	img, substituted, err := assets.LoadImageOr(tb.AssetFS, name, false, fallback)
	if substituted {
		log.Warnf("%s not found, using a placeholder", name)
	}
	return img, err
}
