package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "Simple Example", cfg.Window.Title)
	assert.Equal(t, "cube", cfg.Mesh.Kind)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, cfg.cameraPos())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, 5*time.Second, cfg.Interval())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)
	data := `
window:
  width: 1024
mesh:
  kind: sphere
  steps: 32
textures:
  albedo: ""
camera: [0, -4, 1]
log_level: debug
stats_interval: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, "sphere", cfg.Mesh.Kind)
	assert.Equal(t, 32, cfg.Mesh.Steps)
	assert.Equal(t, float32(1), cfg.Mesh.Radius)
	assert.Empty(t, cfg.Textures.Albedo)
	assert.Equal(t, "dist/scuffed-plastic-rough.png", cfg.Textures.Roughness)
	assert.Equal(t, mgl32.Vec3{0, -4, 1}, cfg.cameraPos())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 250*time.Millisecond, cfg.Interval())
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "colour: red\n"},
		{"syntax", "window: [\n"},
		{"zero width", "window:\n  width: 0\n"},
		{"unknown mesh", "mesh:\n  kind: torus\n"},
		{"sphere steps", "mesh:\n  kind: sphere\n  steps: 0\n"},
		{"radius", "mesh:\n  radius: -1\n"},
		{"short vector", "camera: [1, 2]\n"},
		{"camera at origin", "camera: [0, 0, 0]\n"},
		{"watch without dir", "watch_shaders: true\n"},
		{"log level", "log_level: loud\n"},
		{"duration", "stats_interval: often\n"},
		{"negative duration", "stats_interval: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("mesh:\n  kind: torus\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "torus")
}
