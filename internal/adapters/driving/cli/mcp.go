package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taxa-labs/taxa-cli/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --http to serve over HTTP instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  taxa mcp

  # HTTP mode (for MCP Inspector, remote access)
  taxa mcp --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "taxa": {
        "command": "/path/to/taxa",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ports := &mcp.Ports{
		Library:  libraryService,
		Settings: settingsService,
	}
	if scanFactory != nil {
		scanner, closeScan, err := scanFactory(false, false)
		if err != nil {
			// The server still works read-only; classification tool
			// reports the error per call.
			cmd.PrintErrf("classification disabled: %v\n", err)
		} else {
			defer closeScan()
			ports.Scan = scanner
		}
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on http://localhost%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
