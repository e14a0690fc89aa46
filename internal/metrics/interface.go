package metrics

import "context"

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncReportsIngested()
	IncIngestFailed(reason string)
	AddPlayersCreated(n int)
	ObserveIngestDuration(duration float64)
	ObserveStatsDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore keeps lifetime totals that survive restarts.
type CounterStore interface {
	Add(ctx context.Context, key string, n int) error
	GetAll(ctx context.Context) (map[string]int, error)
}

// Keys of the persisted counters.
const (
	CounterReportsIngested = "reports_ingested"
	CounterPlayersCreated  = "players_created"
	CounterIngestFailed    = "ingest_failed"
)
