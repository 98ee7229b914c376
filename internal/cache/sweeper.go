// internal/cache/sweeper.go
package cache

import (
	"context"
	"time"

	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/common/metrics"
)

// Sweeper periodically deletes expired cache rows. The sweep is not on the
// request hot path; a missed run is a storage-growth concern, not a
// correctness bug.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   logger.Logger
	done     chan struct{}
}

func NewSweeper(store Store, interval time.Duration, log logger.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   log.WithFields(map[string]interface{}{"component": "cache-sweeper"}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweepOnce(ctx)
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	close(s.done)
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	swept, err := s.store.SweepExpired(sweepCtx)
	if err != nil {
		s.logger.Warn("cache sweep failed", map[string]interface{}{
			"error": err,
		})
		return
	}
	if swept > 0 {
		metrics.CacheEntriesSwept.Add(float64(swept))
		s.logger.Info("cache sweep completed", map[string]interface{}{
			"entriesSwept": swept,
		})
	}
}
