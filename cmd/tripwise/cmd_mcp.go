package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	tripwisemcp "github.com/natib-dev/tripwise/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  ask       — run a full assistant turn against a session
  classify  — classify a query's travel intent
  extract   — extract trip entities from a query
  reset     — clear a session's dialogue state
  summary   — report a session's current state

External data APIs are contacted lazily; if they are unreachable the
assistant degrades to rule-based answers rather than failing the call.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			a, store, err := newAssistant(logger)
			if err != nil {
				return fmt.Errorf("mcp: building assistant: %w", err)
			}
			defer func() { _ = store.Close() }()

			srv := tripwisemcp.NewServer(a, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: tripwise MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
