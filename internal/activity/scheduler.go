package activity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	service     Service
	cleanupHour int
	logger      *zap.Logger
	wg          sync.WaitGroup
}

func NewScheduler(service Service, cleanupHour int, logger *zap.Logger) *Scheduler {
	return &Scheduler{service: service, cleanupHour: cleanupHour, logger: logger}
}

// Start runs the retention cleanup daily at cleanupHour until ctx is done
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runDaily(ctx, s.cleanupHour, 0, "activity_cleanup", s.service.Cleanup)
	}()
}

// Wait blocks until every job started by Start has returned
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, name string, task func(context.Context) error) {
	for {
		timer := time.NewTimer(untilNext(time.Now(), hour, minute))

		select {
		case <-timer.C:
			s.run(ctx, name, task)
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) run(ctx context.Context, name string, task func(context.Context) error) {
	start := time.Now()
	if err := task(ctx); err != nil {
		s.logger.Error("scheduled task failed", zap.String("task", name), zap.Error(err))
		return
	}
	s.logger.Debug("scheduled task finished", zap.String("task", name), zap.Duration("took", time.Since(start)))
}

// untilNext is the wait from now to the next hour:minute in now's location
func untilNext(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
