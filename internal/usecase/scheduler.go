package usecase

import (
	"context"
	"errors"

	"HomeworkWatcher/internal/ports"
)

// Scheduler wires the fixed-delay driver with the poll loop.
type Scheduler struct {
	driver ports.Scheduler
	poller *Poller
}

// NewScheduler returns a helper that runs poll cycles until cancelled.
func NewScheduler(driver ports.Scheduler, poller *Poller) *Scheduler {
	return &Scheduler{driver: driver, poller: poller}
}

// Run blocks, executing one cycle per tick. It returns nil once ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.driver == nil || s.poller == nil {
		return errors.New("scheduler requires a driver and a poller")
	}

	job := func(ctx context.Context) {
		_ = s.poller.Cycle(ctx)
	}

	return s.driver.Run(ctx, job)
}
