package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/repositories"
)

// Worker runs background maintenance until stopped.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

type sessionJanitor struct {
	repo     repositories.ScreeningRepository
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewSessionJanitor builds a worker that drops expired screenings every interval.
func NewSessionJanitor(repo repositories.ScreeningRepository, interval time.Duration, logger *zap.Logger) Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionJanitor{
		repo:     repo,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start implements Worker.
func (j *sessionJanitor) Start(ctx context.Context) {
	j.logger.Info("starting session janitor", zap.Duration("interval", j.interval))

	j.wg.Add(1)
	go j.sweep(ctx)
}

// Stop implements Worker. It waits for the sweeping goroutine to exit.
func (j *sessionJanitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopChan) })
	j.wg.Wait()
	j.logger.Info("session janitor stopped")
}

func (j *sessionJanitor) sweep(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := j.repo.Purge(j.now()); purged > 0 {
				j.logger.Debug("purged expired screenings",
					zap.Int("purged", purged),
					zap.Int("remaining", j.repo.Len()),
				)
			}
		}
	}
}
