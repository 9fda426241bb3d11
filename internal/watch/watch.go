// Package watch implements mousegen's dev-loop "--watch" mode: rerun
// rebuild whenever a source SVG or its render.json/animations.json
// configuration changes, following the watcher lifecycle
// cogentcore.org/core/core.FilePicker uses fsnotify with (one
// *fsnotify.Watcher, an Events/Errors select loop, a done channel to
// stop it).
package watch

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Rebuild is called once at start and again after every relevant
// filesystem event; a non-nil error is logged but does not stop the
// watch.
type Rebuild func() error

// Watcher reruns rebuild whenever dir (recursively) or any of
// extraFiles changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Start watches dir and extraFiles, invoking rebuild immediately and
// on every subsequent Create/Write/Remove/Rename event on a ".svg" or
// ".json" file.
func Start(dir string, extraFiles []string, rebuild Rebuild) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addRecursive(fw, dir); err != nil {
		fw.Close()
		return nil, err
	}
	for _, f := range extraFiles {
		if err := fw.Add(f); err != nil {
			slog.Warn("watch: could not watch config file", "file", f, "err", err)
		}
	}

	w := &Watcher{watcher: fw, done: make(chan struct{})}

	if err := rebuild(); err != nil {
		slog.Error("watch: initial build failed", "err", err)
	}

	go w.loop(rebuild)
	return w, nil
}

func (w *Watcher) loop(rebuild Rebuild) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if err := rebuild(); err != nil {
				slog.Error("watch: rebuild failed", "err", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch: watcher error", "err", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".svg") || strings.HasSuffix(ev.Name, ".json")
}

// Close stops the watch loop and releases the underlying fsnotify
// watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
