package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
	"HomeworkWatcher/internal/infrastructure/practicum"
	"HomeworkWatcher/internal/infrastructure/scheduler"
	"HomeworkWatcher/internal/infrastructure/storage"
	"HomeworkWatcher/internal/infrastructure/telegram"
	"HomeworkWatcher/internal/logging"
	"HomeworkWatcher/internal/ports"
	"HomeworkWatcher/internal/usecase"
)

// Application wires configuration to the poll loop and owns its lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds an application; nothing touches the network until Run.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run validates credentials, then polls until ctx is cancelled.
// Startup problems are returned as *domain.StartupError.
func (a *Application) Run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if a.cfg.Lock.Path != "" {
		lock := flock.New(a.cfg.Lock.Path)
		ok, err := lock.TryLock()
		if err != nil {
			return &domain.StartupError{Err: fmt.Errorf("acquire lock %s: %w", a.cfg.Lock.Path, err)}
		}
		if !ok {
			return &domain.StartupError{Err: fmt.Errorf("another watcher holds %s", a.cfg.Lock.Path)}
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				a.logger.Warn("failed to release lock", "path", a.cfg.Lock.Path, "error", err)
			}
		}()
	}

	journal := a.openJournal(ctx)
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	poller := usecase.NewPoller(usecase.PollerDeps{
		Source:      practicum.NewClient(a.cfg.Upstream, nil),
		Notifier:    telegram.NewNotifier(a.cfg.Notifications.Telegram, nil),
		Journal:     journalPort(journal),
		EmptyPolicy: a.cfg.Poller.EmptyPolicy,
		Logger:      a.logger.With("component", "poller"),
	})

	a.logger.Info("watcher started",
		"endpoint", a.cfg.Upstream.Endpoint,
		"interval", a.cfg.Poller.Interval,
		"empty_policy", a.cfg.Poller.EmptyPolicy,
		"cursor", poller.Cursor(),
	)

	driver := scheduler.NewFixedDelay(a.cfg.Poller.Interval)
	if err := usecase.NewScheduler(driver, poller).Run(ctx); err != nil {
		return fmt.Errorf("run scheduler: %w", err)
	}

	a.logger.Info("watcher stopped")
	return nil
}

func (a *Application) openJournal(ctx context.Context) *storage.SQLiteJournal {
	if a.cfg.Journal.Path == "" {
		return nil
	}

	journal, err := storage.OpenJournal(ctx, a.cfg.Journal.Path)
	if err != nil {
		a.logger.Warn("journal disabled", "path", a.cfg.Journal.Path, "error", err)
		return nil
	}

	if n, err := journal.Count(ctx, true); err == nil {
		a.logger.Info("journal opened", "path", a.cfg.Journal.Path, "delivered", n)
	}
	return journal
}

// journalPort keeps a nil *SQLiteJournal from becoming a non-nil interface.
func journalPort(j *storage.SQLiteJournal) ports.Journal {
	if j == nil {
		return nil
	}
	return j
}
