// Package poller runs the periodic checks that watch content platforms
// for new streams and videos.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"streamnotify/internal/store"
)

// Runner drives one poller's tick function on a fixed interval. A tick
// in flight is allowed to finish during shutdown.
type Runner struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context)

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewRunner creates a runner for the named poller
func NewRunner(name string, interval time.Duration, tick func(ctx context.Context)) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		tick:     tick,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop
func (r *Runner) Start(ctx context.Context) {
	slog.Info("Starting poller", "poller", r.name, "interval", r.interval)

	r.wg.Add(1)
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Initial tick
	r.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)", "poller", r.name)
			return
		case <-r.stopChan:
			slog.Info("Poller stopped", "poller", r.name)
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// Stop signals the poller to stop and waits for the in-flight tick
func (r *Runner) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

// anyRouted reports whether at least one creator is enabled and has a
// destination channel. When none is, a tick is a no-op with no network
// calls at all.
func anyRouted(creators map[string]*store.CreatorConfig) bool {
	for _, cfg := range creators {
		if cfg.Routed() {
			return true
		}
	}
	return false
}
