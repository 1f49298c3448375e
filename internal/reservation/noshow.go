package reservation

import (
	"context"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

// NoShowSweeper periodically flips stale reservations to ausente so past
// days never show phantom pending reservas.
type NoShowSweeper struct {
	repo     Repository
	interval time.Duration
}

func NewNoShowSweeper(repo Repository, interval time.Duration) *NoShowSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &NoShowSweeper{repo: repo, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled. One sweep runs
// immediately so restarts catch up without waiting a full interval.
func (s *NoShowSweeper) Start(ctx context.Context) {
	go func() {
		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *NoShowSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	marked, err := s.repo.MarkNoShows(sweepCtx)
	if err != nil {
		logger.Errorf("no-show sweep: %v", err)
		return
	}
	if marked > 0 {
		logger.Infof("no-show sweep marked %d reservas as ausente", marked)
		for i := int64(0); i < marked; i++ {
			metrics.RecordNoShow()
		}
	}
}
