// Package cli implements the screener command line using cobra.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the driving ports the commands call.
type Services struct {
	Ingest     driving.IngestService
	Query      driving.QueryService
	Intent     driving.IntentService
	Scheduling driving.SchedulingService
	Settings   driving.SettingsService

	// Background tasks run for the lifetime of long-running commands
	// (serve, mcp serve), e.g. the prompt file watcher.
	Background []func(ctx context.Context)
}

var (
	ingestService     driving.IngestService
	queryService      driving.QueryService
	intentService     driving.IntentService
	schedulingService driving.SchedulingService
	settingsService   driving.SettingsService
	backgroundTasks   []func(ctx context.Context)
)

var (
	verboseFlag bool
	logJSONFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Résumé screening assistant",
	Long: `screener indexes candidate résumés, answers recruiter questions with
hybrid semantic and keyword retrieval, and books interviews on Google Calendar.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
		logger.SetJSON(logJSONFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "emit logs as JSON")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	intentService = s.Intent
	schedulingService = s.Scheduling
	settingsService = s.Settings
	backgroundTasks = s.Background
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when run
// without one (tests call Execute directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printJSON writes v as indented JSON to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// notConfigured reports a service the command needs but was not wired.
func notConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// startBackground runs the background tasks until ctx is cancelled.
func startBackground(ctx context.Context) {
	for _, task := range backgroundTasks {
		go task(ctx)
	}
}
