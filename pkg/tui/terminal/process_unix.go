// ABOUTME: SIGWINCH-driven resize watcher for Unix terminals
// ABOUTME: Each signal re-reads the size and reports it

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func watchResize(size func() (int, int, error), emit func(width, height int)) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigs:
				if w, h, err := size(); err == nil {
					emit(w, h)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}
