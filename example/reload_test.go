package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/pbr/pbrtest"
	"github.com/go-theft-auto/pbr/shaders"
)

const (
	passVert = "#version 410 core\nin vec3 inPos;\nvoid main() { gl_Position = vec4(inPos, 1.0); }\n"
	passFrag = "#version 410 core\nout vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

func TestIsShaderEvent(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/s/pbr.frag", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/s/pbr.vert", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/s/pbr.vert", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/s/pbr.vert", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/s/pbr.vert", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/s/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isShaderEvent(tt.event), "%v", tt.event)
	}
}

func TestShaderWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := newShaderWatcher(dir)
	require.NoError(t, err)
	defer w.Release()

	assert.False(t, w.changed())

	require.NoError(t, os.WriteFile(filepath.Join(dir, shaders.FragmentFile), []byte(passFrag), 0o644))
	assert.Eventually(t, w.changed, 5*time.Second, 10*time.Millisecond)
}

func TestShaderWatcherMissingDir(t *testing.T) {
	_, err := newShaderWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReloadShaders(t *testing.T) {
	dev := newTestDevice()
	s, _ := newTestScene(t, dev, testConfig())
	defer s.Release()
	prog := s.pipe.shader.Handle()

	dir := t.TempDir()

	// Missing sources keep the running pipeline.
	reloadShaders(s, dir)
	assert.Equal(t, prog, s.pipe.shader.Handle())

	require.NoError(t, os.WriteFile(filepath.Join(dir, shaders.VertexFile), []byte(passVert), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, shaders.FragmentFile), []byte(passFrag), 0o644))
	reloadShaders(s, dir)
	assert.NotEqual(t, prog, s.pipe.shader.Handle())
	assert.Equal(t, 1, dev.Live(pbrtest.KindProgram))
}
