package ports

import (
	"context"
	"time"

	"HomeworkWatcher/internal/domain"
)

// StatusSource queries the homework status endpoint for changes since cursor.
type StatusSource interface {
	Fetch(ctx context.Context, cursor int64) (domain.RawResponse, error)
}

// Notifier delivers a prepared message to the configured chat.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Delivery is one notification attempt recorded in the journal.
type Delivery struct {
	CycleID   string
	Message   string
	Delivered bool
	Error     string
	CreatedAt time.Time
}

// Journal keeps an audit trail of delivery attempts; it is never read back into loop state.
type Journal interface {
	Record(ctx context.Context, d Delivery) error
}

// Scheduler controls when cycles execute.
type Scheduler interface {
	Run(ctx context.Context, job func(context.Context)) error
}
