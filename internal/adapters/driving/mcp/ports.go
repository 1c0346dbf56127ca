package mcp

import (
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers recruiter questions.
	Query driving.QueryService

	// Ingest indexes résumés and reports collection stats.
	Ingest driving.IngestService

	// Intent classifies recruiter messages.
	Intent driving.IntentService

	// Scheduling finds slots and books interviews.
	Scheduling driving.SchedulingService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Ingest, Intent and Scheduling are optional; their tools report
	// errNotConfigured when called without them.
	return nil
}
