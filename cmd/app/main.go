package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeorders/cmd"
	"codeorders/internal/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, syncLogger, err := logging.New(logging.Options{
		Level:       configs.LogLevel,
		Development: configs.LogDevelopment,
	})
	if err != nil {
		return err
	}
	defer func() { _ = syncLogger() }()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to release resources", "error", closeErr)
		}
	}()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", "port", configs.HTTPPort, "store", configs.StoreDriver)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
