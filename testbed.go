package neon

import (
	"time"
)

// TestbedModules lists the modules of the testbed app in install order.
func TestbedModules(cfg Config) []Module {
	window := *NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	window.VSync = cfg.Window.VSync

	modules := []Module{
		LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug},
		TimeModule{MaxDt: 100 * time.Millisecond},
		window,
		InputModule{},
		FpsCameraModule{
			Fov:       cfg.Camera.Fov,
			Near:      cfg.Camera.Near,
			Far:       cfg.Camera.Far,
			Position:  vec3(cfg.Camera.Position),
			Speed:     cfg.Camera.Speed,
			TurnSpeed: cfg.Camera.TurnSpeed,
		},
		LightControlModule{
			Color:     vec4(cfg.Light.Color),
			Direction: vec3(cfg.Light.Direction),
			TurnSpeed: cfg.Light.TurnSpeed,
		},
		TestbedModule{Config: cfg},
		HudModule{Visible: cfg.Render.ShowHud},
	}
	if cfg.Assets.WatchShaders && cfg.Assets.ShaderDir != "" {
		modules = append(modules, ShaderReloadModule{Dir: cfg.Assets.ShaderDir})
	}
	return modules
}

// NewTestbedApp builds the stateful testbed app. Window creation happens
// here, so it must be called from the main goroutine.
func NewTestbedApp(cfg Config) *App {
	return NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(TestbedModules(cfg)...).
		Build()
}
