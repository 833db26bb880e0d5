// ABOUTME: Polling resize watcher for Windows consoles, which have no SIGWINCH
// ABOUTME: Reports only when the size actually changes

//go:build windows

package terminal

import (
	"sync"
	"time"
)

const resizePoll = 250 * time.Millisecond

func watchResize(size func() (int, int, error), emit func(width, height int)) (stop func()) {
	lastW, lastH, _ := size()
	done := make(chan struct{})

	go func() {
		tick := time.NewTicker(resizePoll)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				w, h, err := size()
				if err != nil || (w == lastW && h == lastH) {
					continue
				}
				lastW, lastH = w, h
				emit(w, h)
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
