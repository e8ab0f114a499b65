package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the target/command file each time it changes on disk and
// passes the result to onChange. Edits that leave the file unparsable are
// logged and skipped. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// save by rename are still picked up.
func Watch(ctx context.Context, path string, onChange func(*AppConfig), logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config watcher: watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Debug("config watcher error", "err", err)
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != abs {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := LoadAppConfig(abs)
			if err != nil {
				logger.Warn("config reload skipped", "path", abs, "err", err)
				continue
			}
			logger.Info("config reloaded", "path", abs, "targets", len(cfg.Targets))
			onChange(cfg)
		}
	}
}
