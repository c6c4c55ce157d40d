package scheduler

import (
	"context"
	"errors"
	"time"

	"HomeworkWatcher/internal/ports"
)

// FixedDelay runs a job, waits a fixed delay after it returns, and repeats.
// Runs never overlap; the delay is the only suspension point.
type FixedDelay struct {
	delay time.Duration
}

var _ ports.Scheduler = (*FixedDelay)(nil)

// NewFixedDelay builds a scheduler with the given pause between runs.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Run executes job immediately and then after every delay until ctx is done.
// It returns nil on cancellation.
func (f *FixedDelay) Run(ctx context.Context, job func(context.Context)) error {
	if job == nil {
		return errors.New("scheduler: nil job")
	}
	if f.delay <= 0 {
		return errors.New("scheduler: delay must be positive")
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		job(ctx)
		timer.Reset(f.delay)
	}
}
