package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce window for editors that write config files in bursts.
const watchDebounce = 100 * time.Millisecond

// Watch monitors a config file and calls onReload with freshly loaded
// settings after each change. A reload that fails to parse is reported
// through onError and the previous settings stay in effect. Watch
// blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself, so
// rename-and-replace saves (the common editor pattern) are seen.
func Watch(ctx context.Context, path string, onReload func(*Settings), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			s, err := Load(abs)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onReload(s)
		}
	}
}
