package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

// Watch calls onChange with the reloaded config (or the load error) each
// time path is written, created or renamed into place. The directory is
// watched rather than the file so editors that replace files are seen.
// onChange runs on the watcher's goroutine.
func Watch(path string, onChange func(*Config, error)) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch config: empty path")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	w := &Watcher{w: fw, done: make(chan struct{})}
	target := filepath.Clean(path)
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				onChange(Load(path))
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				onChange(nil, err)
			}
		}
	}()
	return w, nil
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
