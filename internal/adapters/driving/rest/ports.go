package rest

import (
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Query      driving.QueryService
	Ingest     driving.IngestService
	Intent     driving.IntentService
	Scheduling driving.SchedulingService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
