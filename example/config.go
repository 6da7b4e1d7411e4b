package main

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ConfigFilename is read from the working directory when present.
const ConfigFilename = "pbr.yml"

// Config holds the demo settings. Every field has a default; pbr.yml only
// needs the keys it changes.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Mesh     MeshConfig    `yaml:"mesh"`
	Textures TextureConfig `yaml:"textures"`
	Light    LightConfig   `yaml:"light"`
	Camera   [3]float32    `yaml:"camera"`

	// ShaderDir replaces the built-in shaders with pbr.vert and pbr.frag
	// from this directory.
	ShaderDir    string `yaml:"shader_dir"`
	WatchShaders bool   `yaml:"watch_shaders"`

	LogLevel      string `yaml:"log_level"`
	StatsInterval string `yaml:"stats_interval"`

	level         slog.Level
	statsInterval time.Duration
}

// WindowConfig sets the size and title of the window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MeshConfig selects the drawn shape. Kind is "cube" or "sphere".
type MeshConfig struct {
	Kind   string  `yaml:"kind"`
	Radius float32 `yaml:"radius"`
	Steps  int     `yaml:"steps"`
}

// TextureConfig lists the material maps. An empty path selects a flat 1x1
// texture.
type TextureConfig struct {
	Albedo    string `yaml:"albedo"`
	Metallic  string `yaml:"metallic"`
	Normal    string `yaml:"normal"`
	Roughness string `yaml:"roughness"`
}

// LightConfig describes the directional light.
type LightConfig struct {
	Dir   [3]float32 `yaml:"dir"`
	Color [3]float32 `yaml:"color"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 640, Height: 480, Title: "Simple Example"},
		Mesh:   MeshConfig{Kind: "cube", Radius: 1, Steps: 128},
		Textures: TextureConfig{
			Albedo:    "dist/scuffed-plastic-alb.png",
			Metallic:  "dist/scuffed-plastic-metal.png",
			Normal:    "dist/scuffed-plastic-normal.png",
			Roughness: "dist/scuffed-plastic-rough.png",
		},
		Light: LightConfig{
			Dir:   [3]float32{0, 0, -1},
			Color: [3]float32{1, 1, 1},
		},
		Camera:        [3]float32{5, 0, 0},
		LogLevel:      "info",
		StatsInterval: "5s",
		level:         slog.LevelInfo,
		statsInterval: 5 * time.Second,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "parse")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Mesh.Kind {
	case "cube":
	case "sphere":
		if c.Mesh.Steps < 1 {
			return errors.Newf("invalid sphere steps %d", c.Mesh.Steps)
		}
	default:
		return errors.Newf("unknown mesh kind %q", c.Mesh.Kind)
	}
	if c.Mesh.Radius <= 0 {
		return errors.Newf("invalid mesh radius %g", c.Mesh.Radius)
	}
	if c.cameraPos() == (mgl32.Vec3{}) {
		return errors.New("camera must not sit at the origin it looks at")
	}
	if c.WatchShaders && c.ShaderDir == "" {
		return errors.New("watch_shaders needs shader_dir")
	}

	if err := c.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Wrap(err, "log_level")
	}
	d, err := time.ParseDuration(c.StatsInterval)
	if err != nil {
		return errors.Wrap(err, "stats_interval")
	}
	if d <= 0 {
		return errors.Newf("stats_interval must be positive, got %s", d)
	}
	c.statsInterval = d
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() slog.Level {
	return c.level
}

// Interval returns how often frame statistics are logged.
func (c Config) Interval() time.Duration {
	return c.statsInterval
}

func (c Config) cameraPos() mgl32.Vec3 {
	return mgl32.Vec3(c.Camera)
}
