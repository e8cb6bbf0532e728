package neon

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonlabs/neon/render/core"
	"github.com/neonlabs/neon/render/scene"
)

// HudModule draws frame timing, culling counts and the camera position in
// the top left corner. F1 toggles it.
type HudModule struct {
	Visible bool
}

type Hud struct {
	Visible bool
	Margin  float32
}

func (m HudModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Hud{Visible: m.Visible, Margin: 8})
	app.UseSystem(
		System(hudSystem).
			InStage(PreRender).
			InState(OnExecute(StateRunning)),
	)
}

func hudSystem(input *Input, hud *Hud, tb *Testbed, t *Time, cam *core.FpsCamera) {
	if input.JustPressed[KeyF1] {
		hud.Visible = !hud.Visible
	}
	if !hud.Visible || tb.Hud == nil {
		return
	}

	y := hud.Margin
	lines := append(HudLines(t, tb.Stats, cam.Position), tb.Profiler.Lines()...)
	for _, line := range lines {
		tb.Hud.RenderText(hud.Margin, y, line)
		y += tb.Hud.GlyphSize + 2
	}
}

// HudLines formats the overlay text.
func HudLines(t *Time, stats scene.Stats, position mgl32.Vec3) []string {
	return []string{
		fmt.Sprintf("dt: %d (FPS: %.1f)", t.Milliseconds(), t.FPS()),
		fmt.Sprintf("drawn: %d culled: %d", stats.Drawn, stats.Culled),
		fmt.Sprintf("camera: %.1f %.1f %.1f", position.X(), position.Y(), position.Z()),
	}
}
