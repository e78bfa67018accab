// ABOUTME: Serve command starts the learnrise HTTP API
// ABOUTME: Wires config and logging, then blocks until shutdown
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the learnrise HTTP server",
		Long: `Start the learnrise HTTP server

Serves the transcript processing, chat, transcription, and word
lookup endpoints used by the web frontend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
		Example: `  # Start on the default address
  learnrise serve

  # Start on a specific port
  learnrise serve --addr :9090`,
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides LEARNRISE_ADDR)")

	return cmd
}

func runServe(addr string) error {
	if err := godotenv.Load(); err != nil && verbose {
		logrus.Debugf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if quiet {
		logger.SetLevel(logrus.WarnLevel)
	}

	srv := server.New(cfg, logrus.NewEntry(logger))

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
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
