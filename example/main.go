// Example renders a PBR-shaded cube or sphere that can be rotated by
// dragging with the left mouse button.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Settings are read from pbr.yml in the working directory when present.
// The default material textures are expected under dist/.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-theft-auto/pbr/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(ConfigFilename)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	vert, frag, err := shaderSources(cfg.ShaderDir)
	if err != nil {
		return err
	}

	win, err := opengl.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	win.MakeCurrent()

	s, err := newScene(opengl.NewDevice(), win, cfg, vert, frag)
	if err != nil {
		return err
	}
	defer s.Release()

	var watcher *shaderWatcher
	if cfg.WatchShaders {
		watcher, err = newShaderWatcher(cfg.ShaderDir)
		if err != nil {
			return err
		}
		defer watcher.Release()
	}

	stats := newFrameStats(cfg.Interval())
	for !win.PollEvents() {
		if watcher != nil && watcher.changed() {
			reloadShaders(s, cfg.ShaderDir)
		}
		s.frame()
		win.Swap()
		stats.frame()
	}
	return nil
}
