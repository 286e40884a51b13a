package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config whenever the file at path changes and delivers
// the result on the returned channel. Reload failures are logged and
// skipped; the previous config stays in effect. Close the done channel to
// stop watching.
func Watch(path string, logger *slog.Logger, done <-chan struct{}) (<-chan *Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files on save, which drops
	// the watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	updates := make(chan *Config, 1)
	go func() {
		defer watcher.Close()
		defer close(updates)

		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					logger.Warn("config reload failed", "path", path, "err", err)
					continue
				}
				select {
				case updates <- cfg:
				default:
					// Drop when the consumer is behind; the next
					// event delivers a fresher config anyway.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return updates, nil
}
