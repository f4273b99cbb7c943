// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to retrieve and simulate tweets via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/tweetsim/internal/core"
	"github.com/harper/tweetsim/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs tweetsim as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to retrieve and simulate tweets via stdio.

Simulation is only offered when OPENAI_API_KEY is set.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  tweetsim mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tweetsim": {
  #       "command": "tweetsim",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}
	}()

	retriever, err := a.Retriever()
	if err != nil {
		return err
	}

	// Simulation is optional; retrieval works without a chat model
	var simulator *core.Simulator
	if a.Config.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - simulate_tweets will return an error")
	} else {
		simulator, err = a.Simulator()
		if err != nil {
			log.Printf("Warning: Failed to initialize simulator: %v", err)
		} else if verbose {
			log.Println("OpenAI chat client initialized")
		}
	}

	server := mcpserver.NewMCPServer(
		"tweetsim",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, a.Store, retriever, simulator)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("tweetsim MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
