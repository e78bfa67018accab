// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to load videos and chat about them via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/learnrise/learnrise/internal/chunker"
	"github.com/learnrise/learnrise/internal/config"
	"github.com/learnrise/learnrise/internal/llm"
	"github.com/learnrise/learnrise/internal/mcp"
	"github.com/learnrise/learnrise/internal/qa"
	"github.com/learnrise/learnrise/internal/transcript"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs learnrise as an MCP (Model Context Protocol) server, enabling
LLM agents to load YouTube videos and chat about them via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  learnrise mcp

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "learnrise": {
  #       "command": "learnrise",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client := llm.NewClient(llm.ClientConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.ChatTemperature,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	fetcher := transcript.NewFetcher(cfg.Timeout)
	splitter := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	generator := qa.New(client, cfg.QABatchSize)

	server := mcpserver.NewMCPServer(
		"Learnrise",
		"0.1.0",
	)

	mcp.RegisterTools(server, cfg, fetcher, splitter, client, generator)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Learnrise MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, exiting")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
