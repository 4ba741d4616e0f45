// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to identify cards via stdio
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/cardscan/internal/config"
	"github.com/harper/cardscan/internal/embed"
	"github.com/harper/cardscan/internal/index"
	"github.com/harper/cardscan/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs cardscan as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to identify cards from photos via stdio.

The index is loaded once at startup; rebuild and restart to pick up
a newer index.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  cardscan mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "cardscan": {
  #       "command": "cardscan",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Load the index once; a missing file serves an empty index so
	// lookup and stats tools still work.
	idx, err := index.ReadFile(cfg.IndexPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading index: %w", err)
		}
		log.Printf("Warning: no index at %s - serving an empty index", cfg.IndexPath)
		idx = index.New()
	}

	// Embedder is optional: without an API key only identify_card is
	// unavailable.
	var embedder embed.Embedder
	if cfg.APIKey != "" {
		client, err := newEmbedder(cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize embedder: %v", err)
		} else {
			embedder = client
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - identify_card will not work")
	}

	server := mcpserver.NewMCPServer(
		"Cardscan Index",
		"0.1.0",
	)

	mcp.RegisterTools(server, idx, embedder)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Printf("Cardscan MCP server starting on stdio (%d cards indexed)...", idx.Len())
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
