package metrics

import (
	"context"
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// store handles counter-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewCounterStore creates a CounterStore backed by the counters table.
func NewCounterStore(db *sql.DB) CounterStore {
	return &store{
		db: db,
	}
}

// Add upserts a counter key and increments its value by n.
func (s *store) Add(ctx context.Context, key string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = value + excluded.value;
	`, key, n)
	if err != nil {
		return errors.Wrapf(err, "failed to increment counter %s", key)
	}
	log.Debug("Incremented counter", "key", key, "by", n)
	return nil
}

// GetAll returns all counters from the database.
func (s *store) GetAll(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM counters")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query counters")
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}

// persisted mirrors the ingestion counters of a Metrics into a CounterStore.
type persisted struct {
	Metrics
	store CounterStore
}

// WithCounters returns a Metrics that forwards everything to m and also
// records ingestion totals in store. Store failures are logged and dropped.
func WithCounters(m Metrics, store CounterStore) Metrics {
	return &persisted{Metrics: m, store: store}
}

func (p *persisted) add(key string, n int) {
	if err := p.store.Add(context.Background(), key, n); err != nil {
		log.Error("Failed to persist counter", "key", key, "error", err)
	}
}

func (p *persisted) IncReportsIngested() {
	p.Metrics.IncReportsIngested()
	p.add(CounterReportsIngested, 1)
}

func (p *persisted) IncIngestFailed(reason string) {
	p.Metrics.IncIngestFailed(reason)
	p.add(CounterIngestFailed, 1)
}

func (p *persisted) AddPlayersCreated(n int) {
	p.Metrics.AddPlayersCreated(n)
	if n > 0 {
		p.add(CounterPlayersCreated, n)
	}
}
