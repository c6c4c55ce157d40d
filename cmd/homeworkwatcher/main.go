package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"HomeworkWatcher/internal/app"
	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
	"HomeworkWatcher/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, domain.ErrStartup) {
			logger.Error("cannot start", "error", err)
		} else {
			logger.Error("application stopped", "error", err)
		}
		stop()
		os.Exit(1)
	}
}
