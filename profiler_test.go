package neon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_Scopes(t *testing.T) {
	p := NewProfiler()
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	p.BeginScope("shadow")
	clock = clock.Add(1500 * time.Microsecond)
	p.EndScope("shadow")

	p.BeginScope("scene")
	clock = clock.Add(4 * time.Millisecond)
	p.EndScope("scene")

	p.BeginScope("shadow")
	clock = clock.Add(time.Millisecond)
	p.EndScope("shadow")

	assert.Equal(t, []string{"shadow", "scene"}, p.Order)
	assert.Equal(t, []string{"shadow: 1.00 ms", "scene: 4.00 ms"}, p.Lines())

	p.EndScope("never started")
	assert.NotContains(t, p.Scopes, "never started")
}
