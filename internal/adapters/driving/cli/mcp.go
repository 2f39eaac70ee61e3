package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes search, document listing, approve/reject and the
notification inbox as MCP tools, and documents as docdesk:// resources.
Calls run as the signed-in user.

By default, the server communicates over stdio using JSON-RPC and can be
used with any MCP-compatible AI assistant.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default)
  docdesk mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  docdesk mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "docdesk": {
        "command": "/path/to/docdesk",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Search:        searchService,
		Documents:     documentService,
		Notifications: notificationService,
		Dashboard:     dashboardService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
