package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/mcp"
	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driving/rest"
)

var (
	serveAddr    string
	serveMCP     bool
	serveTracing bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the résumé and interview API over HTTP:

  POST /rag/ingest, /rag/query, /rag/stats, /rag/store-jd, /rag/suggest
  POST /interview/check-intent, /interview/available-slots,
       /interview/schedule, /interview/manual-email
  GET  /health

The listen address and CORS origins default to http.addr and
http.cors_origins from the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP over HTTP at /mcp")
	serveCmd.Flags().BoolVar(&serveTracing, "tracing", false, "record OpenTelemetry request spans")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	cfg := rest.Config{Tracing: serveTracing}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if addr == "" {
			addr = settings.HTTPAddr
		}
		cfg.CORSOrigins = settings.CORSOrigins
	}
	if addr == "" {
		addr = ":8080"
	}

	if serveMCP {
		server, err := mcp.NewServer(mcpPorts())
		if err != nil {
			return err
		}
		cfg.MCP = server.Handler()
	}

	server, err := rest.NewServer(&rest.Ports{
		Query:      queryService,
		Ingest:     ingestService,
		Intent:     intentService,
		Scheduling: schedulingService,
	}, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	startBackground(ctx)

	cmd.Printf("Listening on %s\n", addr)
	return server.Run(ctx, addr)
}
