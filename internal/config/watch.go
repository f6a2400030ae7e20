package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// WatchFile monitors path for changes and calls onChange each time the file
// is written. It runs until ctx is cancelled.
//
// Editors often write via rename (atomic save), which replaces the inode,
// so create events count as changes too and the watch is re-added after
// each one.
func WatchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			onChange()

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "path", path, "err", err)
		}
	}
}

// Watch monitors the config file at path and calls onChange with the newly
// loaded Config each time it changes. It runs until ctx is cancelled.
//
// If a reload fails (e.g. invalid YAML), the error is logged and the
// previous config remains active; Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	return WatchFile(ctx, path, func() {
		cfg, err := Load(path)
		if err != nil {
			slog.Error("config reload failed, keeping previous config",
				"path", path, "err", err)
			return
		}
		slog.Info("config reloaded", "path", path)
		onChange(cfg)
	})
}
