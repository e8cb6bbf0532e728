package neon

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/neonlabs/neon/render/scene"
)

func TestTime_Advance(t *testing.T) {
	start := time.Unix(100, 0)
	tm := Time{Time: start}
	assert.Zero(t, tm.FPS())

	tm.Advance(start.Add(20 * time.Millisecond))
	assert.Equal(t, 20*time.Millisecond, tm.Dt)
	assert.Equal(t, int64(20), tm.Milliseconds())
	assert.InDelta(t, 0.02, tm.Seconds(), 1e-6)
	assert.InDelta(t, 50, tm.FPS(), 1e-3)
	assert.Equal(t, start.Add(20*time.Millisecond), tm.Time)
}

func TestTimeModule_ClampsLongFrames(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{MaxDt: time.Millisecond}).Build()
	tm, ok := Resource[Time](app)
	if !ok {
		t.Fatal("time resource missing")
	}
	tm.Time = time.Now().Add(-time.Second)

	app.callSystems(app.state, execute)
	assert.Equal(t, time.Millisecond, tm.Dt)
}

func TestHudLines(t *testing.T) {
	tm := &Time{Dt: 16 * time.Millisecond}
	lines := HudLines(tm, scene.Stats{Drawn: 3, Culled: 2}, mgl32.Vec3{5, 5.3, -1})
	assert.Equal(t, []string{
		"dt: 16 (FPS: 62.5)",
		"drawn: 3 culled: 2",
		"camera: 5.0 5.3 -1.0",
	}, lines)
}
