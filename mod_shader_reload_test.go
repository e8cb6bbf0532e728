package neon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderWatcher_ReportsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	sw, err := NewShaderWatcher(dir)
	require.NoError(t, err)
	defer sw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sphere.frag"), []byte("#version 410 core\n"), 0o644))

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, sw.Changed()...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, changed, "sphere.frag")
}

func TestShaderWatcher_ChangedDeduplicates(t *testing.T) {
	sw := &ShaderWatcher{changed: make(chan string, 8)}
	sw.changed <- "terrain.vert"
	sw.changed <- "font.frag"
	sw.changed <- "terrain.vert"

	assert.Equal(t, []string{"font.frag", "terrain.vert"}, sw.Changed())
	assert.Empty(t, sw.Changed())
}

func TestNewShaderWatcher_RejectsMissingDir(t *testing.T) {
	_, err := NewShaderWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "file.glsl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = NewShaderWatcher(file)
	assert.ErrorContains(t, err, "not a directory")
}
