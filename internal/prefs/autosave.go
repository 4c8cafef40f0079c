// ABOUTME: Periodic autosave of changed preferences
// ABOUTME: Flushes pending changes once more when stopped

package prefs

import (
	"context"
	"sync"
	"time"
)

// Autosaver calls SaveWorld(IfChanged) on a fixed interval.
type Autosaver struct {
	saver    *Saver
	interval time.Duration

	mu      sync.Mutex
	done    chan struct{}
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewAutosaver creates an Autosaver for saver. It does nothing until Start.
func NewAutosaver(saver *Saver, interval time.Duration) *Autosaver {
	return &Autosaver{
		saver:    saver,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. It stops when ctx is cancelled or
// Close is called. Starting twice, or after Close, does nothing.
func (a *Autosaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started || a.closed {
		return
	}
	a.started = true

	a.wg.Add(1)
	go a.run(ctx)
}

func (a *Autosaver) run(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = a.saver.SaveWorld(IfChanged)
		case <-ctx.Done():
			_ = a.saver.SaveWorld(IfChanged)
			return
		case <-a.done:
			_ = a.saver.SaveWorld(IfChanged)
			return
		}
	}
}

// Close stops the loop and waits for the final flush. It is safe to call
// multiple times.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if !a.closed {
		close(a.done)
		a.closed = true
	}
	a.mu.Unlock()

	a.wg.Wait()
}
