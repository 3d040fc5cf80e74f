package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/codeclimb/unirank/api/internal/service"
)

// ScoreRefresher periodically re-runs the weight and fusion passes so that
// time-driven decay (platform staleness, course bonus aging) shows up in
// rankings without requiring new input.
type ScoreRefresher struct {
	registry *service.RegistryService
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewScoreRefresher creates a new score refresher job
func NewScoreRefresher(registry *service.RegistryService, interval time.Duration) *ScoreRefresher {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &ScoreRefresher{
		registry: registry,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the score refresher job
func (r *ScoreRefresher) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run()
	slog.Info("score refresher started", slog.Duration("interval", r.interval))
}

// Stop gracefully stops the score refresher job
func (r *ScoreRefresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.wg.Wait()
	slog.Info("score refresher stopped")
}

// run is the main loop
func (r *ScoreRefresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.stopCh:
			return
		}
	}
}

func (r *ScoreRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	r.registry.RefreshScores(ctx)
	slog.Debug("scores refreshed", slog.Duration("took", time.Since(start)))
}
