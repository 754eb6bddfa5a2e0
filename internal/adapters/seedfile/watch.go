package seedfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"knowmap/internal/domain"
)

// DebounceDelay collapses the burst of events an editor save produces
const DebounceDelay = 200 * time.Millisecond

// ChangeFunc receives the reloaded graph, or the error that stopped it loading
type ChangeFunc func(nodes []domain.Node, conns []domain.Connection, err error)

// Watch reloads path whenever it changes and hands the result to onChange.
// The parent directory is watched so atomic rename saves are seen.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange ChangeFunc) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Debug("watching seed file", zap.String("path", path))

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("seed file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()))

			if debounce == nil {
				debounce = time.NewTimer(DebounceDelay)
			} else {
				debounce.Reset(DebounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			nodes, conns, err := Load(path)
			if err != nil {
				logger.Warn("seed file reload failed", zap.Error(err))
			}
			onChange(nodes, conns, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", zap.Error(err))
		}
	}
}
