// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "exercise-tracker/internal"
)

func main() {
	os.Exit(run())
}

// run serves until a signal arrives or the listener fails, and returns the exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		_ = application.Shutdown(context.Background())
		return 1
	}

	server := application.NewHTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		application.Logger.Info("Starting HTTP server",
			"port", application.Config.ServerPort,
			"request_timeout", application.Config.HTTP.RequestTimeout,
			"write_timeout", application.Config.HTTP.WriteTimeout,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		application.Logger.Error("HTTP server failed", "error", err)
		exitCode = 1
	case <-ctx.Done():
		application.Logger.Info("Shutdown signal received, draining HTTP server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), application.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("HTTP server shutdown failed", "error", err)
		exitCode = 1
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("Application shutdown failed", "error", err)
		exitCode = 1
	}

	if exitCode == 0 {
		application.Logger.Info("Application gracefully stopped.")
	}
	return exitCode
}
