// Package timer provides redraw timer channels for components.
//
// Every channel coalesces: a tick that arrives while the previous one has not
// been consumed is dropped. Channels are closed when their context ends,
// which stops the component loop reading them.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Every ticks every d until ctx is done.
func Every(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notify(ch)
			}
		}
	}()
	return ch
}

// Aligned ticks at each multiple of d on the wall clock, so a one minute
// clock changes exactly when the minute does.
func Aligned(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			wait := time.Until(time.Now().Truncate(d).Add(d))
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
				notify(ch)
			}
		}
	}()
	return ch
}

// Watch ticks whenever one of the files is written, created, renamed or
// removed. Directories of the files are watched so editors that replace
// files on save keep triggering.
func Watch(ctx context.Context, log *slog.Logger, paths ...string) (<-chan struct{}, error) {
	if log == nil {
		log = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("expand %s: %w", p, err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if _, hit := targets[filepath.Clean(ev.Name)]; !hit {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					notify(ch)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("file watch error", "error", err)
			}
		}
	}()
	return ch, nil
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
