// ABOUTME: Main entry point for the learnrise HTTP server
// ABOUTME: Loads config, wires the server, and handles graceful shutdown
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/server"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logrus.NewEntry(logger)

	if err := godotenv.Load(); err != nil {
		entry.Debug("No .env file found (this is okay for production)")
	}

	cfg, err := config.Load()
	if err != nil {
		entry.WithError(err).Fatal("Invalid configuration")
	}

	srv := server.New(cfg, entry)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			entry.WithError(err).Error("Shutdown error")
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.WithError(err).Fatal("Server error")
		}
	}
}
