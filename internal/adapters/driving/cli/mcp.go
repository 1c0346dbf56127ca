package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
candidates and book interviews.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Tools: ingest_resumes, query_resumes, check_intent, available_slots,
schedule_interview, get_manual_email, resume_stats.

Examples:
  # Stdio mode (default, for desktop assistants)
  screener mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  screener mcp serve --port 8081

Assistant configuration:
  {
    "mcpServers": {
      "screener": {
        "command": "/path/to/screener",
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

// mcpPorts collects the services exposed as MCP tools.
func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Query:      queryService,
		Ingest:     ingestService,
		Intent:     intentService,
		Scheduling: schedulingService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	startBackground(ctx)

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		// Stdout stays free for stdio mode, so only announce in HTTP mode.
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
