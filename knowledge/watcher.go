package knowledge

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store from path whenever the file changes, until ctx is
// cancelled. Intended for development; the canonical deployment fixes the
// table at startup. A reload that fails to parse keeps the previous table.
func (s *Store) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: editors replace files on save, which drops the
	// watch when the file itself is registered.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	target, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || name != target {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}

				entries, err := Load(path)
				if err != nil {
					logger.Warn("knowledge reload failed", "path", path, "error", err)
					continue
				}
				s.Reload(entries)
				logger.Info("knowledge reloaded", "path", path, "entries", len(entries))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("knowledge watcher error", "error", err)
			}
		}
	}()

	return nil
}
