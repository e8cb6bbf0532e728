package neon

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
}

// Seconds is the frame delta in seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) Milliseconds() int64 {
	return t.Dt.Milliseconds()
}

// FPS is the frame rate implied by the last delta, zero before the first frame.
func (t *Time) FPS() float32 {
	if t.Dt <= 0 {
		return 0
	}
	return 1 / t.Seconds()
}

// Advance moves the clock to now.
func (t *Time) Advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
}

// TimeModule keeps a Time resource updated at the start of every frame.
// MaxDt clamps long frames, such as the first one after loading, so
// animations do not jump.
type TimeModule struct {
	MaxDt time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})

	maxDt := mod.MaxDt
	app.UseSystem(
		System(func(timeResource *Time) {
			timeResource.Advance(time.Now())
			if maxDt > 0 && timeResource.Dt > maxDt {
				timeResource.Dt = maxDt
			}
		}).
			InStage(Prelude).
			RunAlways(),
	)
}
