package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/ports"
)

// FailurePrefix opens every synthetic failure notification.
const FailurePrefix = "Сбой в работе программы: "

// PollerDeps wires the driven adapters into the poll loop.
type PollerDeps struct {
	Source      ports.StatusSource
	Notifier    ports.Notifier
	Journal     ports.Journal
	EmptyPolicy config.EmptyPolicy
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
}

// Outcome summarizes one cycle.
type Outcome struct {
	CycleID     string
	Message     string
	Sent        bool
	Suppressed  bool
	Err         error
	DeliveryErr error
	Cursor      int64
}

// Poller owns the cursor and the last delivered message; one goroutine drives it.
type Poller struct {
	source   ports.StatusSource
	notifier ports.Notifier
	journal  ports.Journal
	policy   config.EmptyPolicy
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	cursor      int64
	lastMessage string
}

// NewPoller constructs the poll loop with the cursor set to the current time.
func NewPoller(deps PollerDeps) *Poller {
	p := &Poller{
		source:   deps.Source,
		notifier: deps.Notifier,
		journal:  deps.Journal,
		policy:   deps.EmptyPolicy,
		logger:   deps.Logger,
		now:      deps.Now,
		newID:    deps.NewID,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	if p.policy == "" {
		p.policy = config.EmptyStrict
	}
	p.cursor = p.now().Unix()
	return p
}

// Cursor returns the lower bound of the next query window.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// LastMessage returns the most recently delivered message.
func (p *Poller) LastMessage() string {
	return p.lastMessage
}

// Cycle runs fetch, validate, interpret and notify once. Errors never escape;
// they are logged and turned into a failure notification.
func (p *Poller) Cycle(ctx context.Context) Outcome {
	id := p.newID()
	log := p.logger.With("cycle_id", id)
	out := Outcome{CycleID: id}

	log.Info("cycle started", "cursor", p.cursor)

	message, err := p.evaluate(ctx, id, log)
	if ctx.Err() != nil {
		log.Info("cycle interrupted", "error", ctx.Err())
		out.Err = ctx.Err()
		out.Cursor = p.cursor
		return out
	}
	if err != nil {
		log.Error("cycle failed", "error", err)
		message = FailurePrefix + err.Error()
		out.Err = err
	}
	out.Message = message

	switch {
	case message == "":
		log.Debug("no homework updates")
	case message == p.lastMessage:
		out.Suppressed = true
		log.Debug("notification suppressed", "message", message)
	default:
		out.DeliveryErr = p.deliver(ctx, id, log, message)
		out.Sent = out.DeliveryErr == nil
	}

	if out.Err == nil && out.DeliveryErr == nil {
		p.cursor = p.now().Unix()
	}
	out.Cursor = p.cursor
	return out
}

func (p *Poller) evaluate(ctx context.Context, id string, log *slog.Logger) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("cycle panic",
				"correlation_id", id,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			message = ""
			err = fmt.Errorf("internal failure (correlation_id: %s)", id)
		}
	}()

	if p.source == nil {
		return "", errors.New("status source is not configured")
	}

	raw, err := p.source.Fetch(ctx, p.cursor)
	if err != nil {
		return "", err
	}
	log.Debug("statuses fetched")

	records, err := Extract(raw, p.policy)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	log.Debug("response validated", "records", len(records))

	return Render(records[0])
}

func (p *Poller) deliver(ctx context.Context, id string, log *slog.Logger, message string) error {
	var err error
	if p.notifier == nil {
		err = errors.New("notifier is not configured")
	} else {
		err = p.notifier.Send(ctx, message)
	}

	if err != nil {
		log.Error("notification failed", "error", err)
	} else {
		p.lastMessage = message
		log.Info("notification sent", "message", message)
	}

	p.record(ctx, log, ports.Delivery{
		CycleID:   id,
		Message:   message,
		Delivered: err == nil,
		Error:     errorText(err),
		CreatedAt: p.now(),
	})
	return err
}

func (p *Poller) record(ctx context.Context, log *slog.Logger, d ports.Delivery) {
	if p.journal == nil {
		return
	}
	if err := p.journal.Record(ctx, d); err != nil {
		log.Warn("journal write failed", "error", err)
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
