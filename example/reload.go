package main

import (
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/go-theft-auto/pbr/shaders"
)

// shaderWatcher reports changes to the shader sources in a directory. The
// render thread polls it between frames.
type shaderWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
}

func newShaderWatcher(dir string) (*shaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create shader watcher")
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", dir)
	}
	return &shaderWatcher{watcher: watcher, dir: dir}, nil
}

// changed drains pending events without blocking and reports whether a
// shader source was written or replaced.
func (w *shaderWatcher) changed() bool {
	changed := false
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return changed
			}
			if isShaderEvent(event) {
				slog.Debug("shader changed", "file", event.Name, "op", event.Op.String())
				changed = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return changed
			}
			slog.Warn("shader watcher", "dir", w.dir, "error", err)
		default:
			return changed
		}
	}
}

func isShaderEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	switch filepath.Base(event.Name) {
	case shaders.VertexFile, shaders.FragmentFile:
		return true
	}
	return false
}

func (w *shaderWatcher) Release() {
	if err := w.watcher.Close(); err != nil {
		slog.Warn("close shader watcher", "error", err)
	}
}

// reloadShaders rebuilds the scene pipeline from dir. Failures are logged
// and the running pipeline is kept.
func reloadShaders(s *scene, dir string) {
	vert, frag, err := shaderSources(dir)
	if err == nil {
		err = s.reload(vert, frag)
	}
	if err != nil {
		slog.Error("shader reload failed", "dir", dir, "error", err)
		return
	}
	slog.Info("shaders reloaded", "dir", dir)
}
