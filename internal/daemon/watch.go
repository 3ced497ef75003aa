package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MrJer/automute/internal/colors"
	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay coalesces bursts of writes to the watched file.
const DefaultReloadDelay = 500 * time.Millisecond

// fileWatcher signals on C after the watched file settles. The parent
// directory is watched so that atomic replacement by rename is seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration
	clock   clock.Clock
	C       chan struct{}
}

func watchFile(ctx context.Context, path string, delay time.Duration, clk clock.Clock) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	fw := &fileWatcher{
		watcher: w,
		path:    path,
		delay:   delay,
		clock:   clk,
		C:       make(chan struct{}, 1),
	}
	go fw.loop(ctx)
	return fw, nil
}

func (fw *fileWatcher) loop(ctx context.Context) {
	var timer *clock.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	name := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = fw.clock.AfterFunc(fw.delay, fw.signal)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			colors.StructuredError("daemon", "watch", "failed", err, map[string]any{"path": fw.path})
		}
	}
}

// signal never blocks: one pending reload covers any number of changes.
func (fw *fileWatcher) signal() {
	select {
	case fw.C <- struct{}{}:
	default:
	}
}

func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}
