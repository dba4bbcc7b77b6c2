package heatmap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/logger"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the dataset at path with l whenever it changes and delivers
// the new points on the returned channel. Only the latest unread dataset is
// kept. The channel is closed when ctx is done.
//
// The parent directory is watched so that editors which replace the file by
// rename are still seen.
func (l Loader) Watch(ctx context.Context, path string) (<-chan []Point, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan []Point, 1)
	log := logger.Named("watch").With(zap.String("path", abs))

	go func() {
		defer close(out)
		defer watcher.Close()

		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					timer = time.After(reloadDelay)
				}

			case <-timer:
				timer = nil
				points, err := l.LoadFile(abs)
				if err != nil {
					log.Warn("reload failed", zap.Error(err))
					continue
				}
				log.Info("dataset reloaded", zap.Int("points", len(points)))
				deliver(out, points)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.Error(err))
			}
		}
	}()

	return out, nil
}

// deliver replaces any unread dataset with points.
func deliver(out chan []Point, points []Point) {
	select {
	case <-out:
	default:
	}
	out <- points
}
