// ABOUTME: Polling file watcher that reloads settings when a config file changes
// ABOUTME: Run blocks until its context ends so it can live in an errgroup

package config

import (
	"context"
	"maps"
	"os"
	"sync"
	"time"
)

const defaultPollInterval = 2 * time.Second

// stamp identifies one version of a file.
type stamp struct {
	mod  time.Time
	size int64
}

// Watcher polls the settings files and calls onChange with freshly loaded
// settings after any of them is created, edited or removed. Reload errors
// go to onError and the previous settings stay in effect.
type Watcher struct {
	global   string
	project  string
	onChange func(*Settings)
	onError  func(error)

	mu       sync.Mutex
	interval time.Duration
	seen     map[string]stamp
}

// NewWatcher creates a watcher for the two settings files. Empty paths are
// skipped.
func NewWatcher(globalPath, projectPath string, onChange func(*Settings), onError func(error)) *Watcher {
	w := &Watcher{
		global:   globalPath,
		project:  projectPath,
		onChange: onChange,
		onError:  onError,
		interval: defaultPollInterval,
	}
	w.seen = w.scan()
	return w
}

// SetInterval overrides the default polling interval (2s).
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Run polls until ctx is done. It always returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check rescans the files now and reloads if anything changed. It reports
// whether a change was seen.
func (w *Watcher) Check() bool {
	now := w.scan()
	w.mu.Lock()
	changed := !maps.Equal(now, w.seen)
	w.seen = now
	w.mu.Unlock()
	if !changed {
		return false
	}

	s, err := Load(w.global, w.project)
	switch {
	case err != nil && w.onError != nil:
		w.onError(err)
	case err == nil && w.onChange != nil:
		w.onChange(s)
	}
	return true
}

// scan stats every watched path; missing files are absent from the result.
func (w *Watcher) scan() map[string]stamp {
	out := make(map[string]stamp, 2)
	for _, p := range []string{w.global, w.project} {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err == nil {
			out[p] = stamp{mod: fi.ModTime(), size: fi.Size()}
		}
	}
	return out
}
