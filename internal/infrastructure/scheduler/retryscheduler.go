// Package scheduler runs the periodic background jobs of the notification
// subsystem.
package scheduler

import (
	"context"
	"time"

	"habitat/internal/shared/goroutine"
	"habitat/internal/shared/logger"
)

// RetryProcessor re-dispatches deliveries that failed with retries left.
type RetryProcessor interface {
	SweepOnce(ctx context.Context) (int, error)
}

// RetryScheduler drives the retry sweep on a fixed interval. Each pass picks
// up pending records with at least one failed attempt and hands them back to
// the dispatcher.
type RetryScheduler struct {
	processor RetryProcessor
	logger    logger.Interface
	stopChan  chan struct{}
	interval  time.Duration
}

func NewRetryScheduler(processor RetryProcessor, interval time.Duration, logger logger.Interface) *RetryScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RetryScheduler{
		processor: processor,
		logger:    logger,
		stopChan:  make(chan struct{}),
		interval:  interval,
	}
}

func (s *RetryScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting retry scheduler", "interval", s.interval)
	goroutine.SafeGo(s.logger, "retry-scheduler", func() {
		s.run(ctx)
	})
}

func (s *RetryScheduler) Stop() {
	close(s.stopChan)
}

func (s *RetryScheduler) run(ctx context.Context) {
	// Run immediately so deliveries stranded by a restart are picked up.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("retry scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("retry scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RetryScheduler) sweep(ctx context.Context) {
	count, err := s.processor.SweepOnce(ctx)
	if err != nil {
		s.logger.Errorw("retry sweep failed", "error", err)
		return
	}
	if count > 0 {
		s.logger.Infow("retry sweep re-dispatched deliveries", "count", count)
	}
}
