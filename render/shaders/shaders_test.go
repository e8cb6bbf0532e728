package shaders

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedProgramsExist(t *testing.T) {
	root := FS()
	for _, p := range All() {
		for _, file := range []string{p.Vertex, p.Fragment} {
			src, err := fs.ReadFile(root, file)
			require.NoError(t, err, "%s: %s", p.Name, file)
			assert.True(t, strings.HasPrefix(string(src), "#version 410 core"), "%s lacks a version line", file)
		}
	}
}

func TestLitProgramsDeclareSharedUniforms(t *testing.T) {
	root := FS()
	for _, p := range []Program{Sphere, Terrain} {
		vs, err := fs.ReadFile(root, p.Vertex)
		require.NoError(t, err)
		for _, u := range []string{"projection", "view", "world", "light_matrix"} {
			assert.Contains(t, string(vs), "uniform mat4 "+u+";", p.Vertex)
		}

		frag, err := fs.ReadFile(root, p.Fragment)
		require.NoError(t, err)
		for _, u := range []string{"diffuse_map", "shadow_map", "light_direction", "light_color"} {
			assert.Contains(t, string(frag), u, p.Fragment)
		}
	}
}

func TestProgramUses(t *testing.T) {
	assert.True(t, Sphere.Uses("sphere.frag"))
	assert.False(t, Sphere.Uses("terrain.frag"))
}
