package neon

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/neonlabs/neon/render/assets"
	"github.com/neonlabs/neon/render/core"
)

// EnvPrefix prefixes every environment override, e.g. NEON_WINDOW_WIDTH.
const EnvPrefix = "NEON_"

var ErrConfig = errors.New("invalid config")

// Config describes the testbed scene and its window. Files may be TOML or
// YAML; environment variables override a handful of fields on top.
type Config struct {
	Window  WindowConfig   `toml:"window" yaml:"window"`
	Camera  CameraConfig   `toml:"camera" yaml:"camera"`
	Light   LightConfig    `toml:"light" yaml:"light"`
	Render  RenderConfig   `toml:"render" yaml:"render"`
	Assets  AssetsConfig   `toml:"assets" yaml:"assets"`
	Terrain TerrainConfig  `toml:"terrain" yaml:"terrain"`
	Planets []PlanetConfig `toml:"planets" yaml:"planets"`
	Log     LogConfig      `toml:"log" yaml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

type CameraConfig struct {
	Fov       float32    `toml:"fov" yaml:"fov"`
	Near      float32    `toml:"near" yaml:"near"`
	Far       float32    `toml:"far" yaml:"far"`
	Position  [3]float32 `toml:"position" yaml:"position"`
	Speed     float32    `toml:"speed" yaml:"speed"`
	TurnSpeed float32    `toml:"turn_speed" yaml:"turn_speed"`
}

type LightConfig struct {
	Color     [4]float32 `toml:"color" yaml:"color"`
	Direction [3]float32 `toml:"direction" yaml:"direction"`
	TurnSpeed float32    `toml:"turn_speed" yaml:"turn_speed"`
}

type RenderConfig struct {
	ShadowMapSize  int        `toml:"shadow_map_size" yaml:"shadow_map_size"`
	FitShadows     bool       `toml:"fit_shadows" yaml:"fit_shadows"`
	ShadowDistance float32    `toml:"shadow_distance" yaml:"shadow_distance"`
	Offscreen      bool       `toml:"offscreen" yaml:"offscreen"`
	ClearColor     [4]float32 `toml:"clear_color" yaml:"clear_color"`
	ShowHud        bool       `toml:"show_hud" yaml:"show_hud"`
}

type AssetsConfig struct {
	// Root is the directory asset paths are relative to.
	Root string `toml:"root" yaml:"root"`
	// ShaderDir loads GLSL from disk instead of the embedded copies.
	ShaderDir    string `toml:"shader_dir" yaml:"shader_dir"`
	WatchShaders bool   `toml:"watch_shaders" yaml:"watch_shaders"`
	// Placeholders replaces missing images with generated ones.
	Placeholders bool   `toml:"placeholders" yaml:"placeholders"`
	Skybox       string `toml:"skybox" yaml:"skybox"`
	Font         string `toml:"font" yaml:"font"`
}

type TerrainConfig struct {
	Enabled     bool       `toml:"enabled" yaml:"enabled"`
	Heightmap   string     `toml:"heightmap" yaml:"heightmap"`
	Texture     string     `toml:"texture" yaml:"texture"`
	HeightScale float32    `toml:"height_scale" yaml:"height_scale"`
	MaxSize     int        `toml:"max_size" yaml:"max_size"`
	Position    [3]float32 `toml:"position" yaml:"position"`
}

type PlanetConfig struct {
	Name        string     `toml:"name" yaml:"name"`
	Texture     string     `toml:"texture" yaml:"texture"`
	Position    [3]float32 `toml:"position" yaml:"position"`
	Radius      float32    `toml:"radius" yaml:"radius"`
	Stacks      int        `toml:"stacks" yaml:"stacks"`
	Sectors     int        `toml:"sectors" yaml:"sectors"`
	Period      float32    `toml:"period" yaml:"period"`
	Emissive    bool       `toml:"emissive" yaml:"emissive"`
	CastsShadow bool       `toml:"casts_shadow" yaml:"casts_shadow"`

	// Moon bodies circle Pivot, their planet's position, as Pivot orbits.
	Moon  bool       `toml:"moon" yaml:"moon"`
	Pivot [3]float32 `toml:"pivot" yaml:"pivot"`
	// Axis defaults to +Z and Speed to core.DefaultRotationSpeed when zero.
	Axis  [3]float32 `toml:"axis" yaml:"axis"`
	Speed float32    `toml:"speed" yaml:"speed"`
}

// Orbit is the animation state the planet starts with.
func (p PlanetConfig) Orbit() core.Orbit {
	o := core.NewOrbit(vec3(p.Position), p.Period)
	if p.Axis != [3]float32{} {
		o.Axis = vec3(p.Axis)
	}
	if p.Speed != 0 {
		o.Speed = p.Speed
	}
	o.Moon = p.Moon
	o.Pivot = vec3(p.Pivot)
	return o
}

type LogConfig struct {
	Prefix string `toml:"prefix" yaml:"prefix"`
	Debug  bool   `toml:"debug" yaml:"debug"`
}

// envOverrides are the fields settable from the environment.
type envOverrides struct {
	Width        int    `env:"WINDOW_WIDTH"`
	Height       int    `env:"WINDOW_HEIGHT"`
	Title        string `env:"WINDOW_TITLE"`
	VSync        bool   `env:"WINDOW_VSYNC"`
	AssetRoot    string `env:"ASSETS_ROOT"`
	ShaderDir    string `env:"SHADER_DIR"`
	WatchShaders bool   `env:"WATCH_SHADERS"`
	Placeholders bool   `env:"PLACEHOLDERS"`
	ShadowMap    int    `env:"SHADOW_MAP_SIZE"`
	Offscreen    bool   `env:"OFFSCREEN"`
	Debug        bool   `env:"DEBUG"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "neon-testbed", VSync: true},
		Camera: CameraConfig{
			Fov:       45,
			Near:      0.5,
			Far:       10000,
			Position:  [3]float32{5, 5, 5},
			Speed:     DefaultCameraSpeed,
			TurnSpeed: DefaultCameraTurnSpeed,
		},
		Light: LightConfig{
			Color:     [4]float32{1, 1, 1, 1},
			Direction: [3]float32{0, -1, 0},
			TurnSpeed: DefaultLightTurnSpeed,
		},
		Render: RenderConfig{
			ShadowMapSize:  2048,
			ShadowDistance: 1000,
			ClearColor:     [4]float32{0, 0, 0, 1},
			ShowHud:        true,
		},
		Assets: AssetsConfig{
			Root:         "assets",
			Placeholders: true,
			Skybox:       "skybox",
			Font:         "fonts/font_8x8.png",
		},
		Terrain: TerrainConfig{
			Enabled:     true,
			Heightmap:   "heightmap/heightmap.png",
			Texture:     "heightmap/texture.png",
			HeightScale: 0.1,
			MaxSize:     512,
			Position:    [3]float32{-256, -60, -256},
		},
		Planets: []PlanetConfig{
			{Name: "sun", Texture: "sphere/2k_sun.jpg", Position: [3]float32{50, 50, 50}, Radius: 30, Stacks: 36, Sectors: 36, Period: 0.01, Emissive: true},
			{Name: "earth", Texture: "sphere/2k_earth_daymap.jpg", Position: [3]float32{150, 0, 0}, Radius: 6.378, Stacks: 36, Sectors: 36, Period: 365, CastsShadow: true},
			{Name: "jupiter", Texture: "sphere/2k_jupiter.jpg", Position: [3]float32{300, 0, 0}, Radius: 71.492, Stacks: 36, Sectors: 36, Period: 500, CastsShadow: true},
			{Name: "saturn", Texture: "sphere/2k_saturn.jpg", Position: [3]float32{434, 0, 0}, Radius: 60.268, Stacks: 36, Sectors: 36, Period: 600, CastsShadow: true},
		},
		Log: LogConfig{Prefix: "neon"},
	}
}

// LoadConfig reads path on top of the defaults and applies environment
// overrides. A missing file leaves the defaults in place.
func LoadConfig(fsys fs.FS, path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := fs.ReadFile(fsys, path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := cfg.decode(path, data); err != nil {
				return cfg, err
			}
		}
	}

	if err := cfg.applyEnv(nil); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadConfigFile is LoadConfig against the OS file system.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return LoadConfig(nil, "")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config path: %w", err)
	}
	return LoadConfig(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

// decode merges data over c. A file that lists planets replaces the
// default set instead of extending it.
func (c *Config) decode(path string, data []byte) error {
	defaults := c.Planets
	c.Planets = nil
	defer func() {
		if c.Planets == nil {
			c.Planets = defaults
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrConfig, filepath.Ext(path))
	}
	return nil
}

// applyEnv overrides fields from environ, or from the process environment
// when environ is nil.
func (c *Config) applyEnv(environ map[string]string) error {
	o := envOverrides{
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		Title:        c.Window.Title,
		VSync:        c.Window.VSync,
		AssetRoot:    c.Assets.Root,
		ShaderDir:    c.Assets.ShaderDir,
		WatchShaders: c.Assets.WatchShaders,
		Placeholders: c.Assets.Placeholders,
		ShadowMap:    c.Render.ShadowMapSize,
		Offscreen:    c.Render.Offscreen,
		Debug:        c.Log.Debug,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	c.Window.Width, c.Window.Height = o.Width, o.Height
	c.Window.Title, c.Window.VSync = o.Title, o.VSync
	c.Assets.Root, c.Assets.ShaderDir = o.AssetRoot, o.ShaderDir
	c.Assets.WatchShaders, c.Assets.Placeholders = o.WatchShaders, o.Placeholders
	c.Render.ShadowMapSize, c.Render.Offscreen = o.ShadowMap, o.Offscreen
	c.Log.Debug = o.Debug
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v", c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range %v..%v", c.Camera.Near, c.Camera.Far))
	}
	if vec3(c.Light.Direction).Len() == 0 {
		errs = append(errs, errors.New("light direction is zero"))
	}
	if c.Render.ShadowMapSize <= 0 {
		errs = append(errs, fmt.Errorf("shadow map size %d", c.Render.ShadowMapSize))
	}
	if c.Terrain.Enabled && c.Terrain.MaxSize < 2 {
		errs = append(errs, fmt.Errorf("terrain max size %d", c.Terrain.MaxSize))
	}

	names := make(map[string]bool, len(c.Planets))
	for i, p := range c.Planets {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("planet %d has no name", i))
		} else if names[p.Name] {
			errs = append(errs, fmt.Errorf("planet %q defined twice", p.Name))
		}
		names[p.Name] = true
		if p.Radius <= 0 || p.Stacks < 2 || p.Sectors < 3 {
			errs = append(errs, fmt.Errorf("planet %q: radius %v, %dx%d tessellation", p.Name, p.Radius, p.Stacks, p.Sectors))
		}
		if p.Period < 0 {
			errs = append(errs, fmt.Errorf("planet %q: negative period", p.Name))
		}
		if p.Moon && p.Pivot == [3]float32{} {
			errs = append(errs, fmt.Errorf("planet %q: moon without a pivot", p.Name))
		}
	}

	if !c.Assets.Placeholders {
		errs = append(errs, c.missingAssets()...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfig, errors.Join(errs...))
	}
	return nil
}

// AssetPaths lists every file the scene loads, relative to Assets.Root.
func (c *Config) AssetPaths() []string {
	var paths []string
	for _, p := range c.Planets {
		paths = append(paths, p.Texture)
	}
	if c.Terrain.Enabled {
		paths = append(paths, c.Terrain.Heightmap, c.Terrain.Texture)
	}
	if c.Assets.Skybox != "" {
		faces := assets.SkyboxPaths(c.Assets.Skybox)
		paths = append(paths, faces[:]...)
	}
	if c.Assets.Font != "" {
		paths = append(paths, c.Assets.Font)
	}
	return paths
}

func (c *Config) missingAssets() []error {
	root := c.Assets.Root
	if root == "" {
		root = "."
	}
	fsys := os.DirFS(root)
	var errs []error
	for _, p := range c.AssetPaths() {
		if p == "" {
			continue
		}
		if _, err := fs.Stat(fsys, p); err != nil {
			errs = append(errs, fmt.Errorf("asset %s: %w", p, err))
		}
	}
	return errs
}

func vec3(v [3]float32) mgl32.Vec3 { return mgl32.Vec3(v) }
func vec4(v [4]float32) mgl32.Vec4 { return mgl32.Vec4(v) }
