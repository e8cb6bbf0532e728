package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSingleRenderer(t *testing.T) {
	app := NewAppBuilder().Build()

	ensureSingleRenderer(app, "testbed")
	ensureSingleRenderer(app, "testbed")
	tag, ok := Resource[RendererTag](app)
	require.True(t, ok)
	assert.Equal(t, "testbed", tag.Name)

	assert.PanicsWithValue(t, "Multiple renderers installed: testbed and voxel", func() {
		ensureSingleRenderer(app, "voxel")
	})
}
