package metrics

import (
	"context"
	"testing"

	"github.com/handballito/handballito-time/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) CounterStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return NewCounterStore(db)
}

func TestAddAndGetAll(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	// 1. Initially, there should be no counters
	counters, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Add to a new key
	require.NoError(t, store.Add(ctx, CounterReportsIngested, 1))
	counters, err = store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{CounterReportsIngested: 1}, counters)

	// 3. Add to existing and new keys
	require.NoError(t, store.Add(ctx, CounterReportsIngested, 1))
	require.NoError(t, store.Add(ctx, CounterPlayersCreated, 3))
	counters, err = store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		CounterReportsIngested: 2,
		CounterPlayersCreated:  3,
	}, counters)
}

func TestWithCounters(t *testing.T) {
	inner := NewMock()
	counters := NewMockCounterStore()
	m := WithCounters(inner, counters)

	m.IncReportsIngested()
	m.AddPlayersCreated(2)
	m.AddPlayersCreated(0)
	m.IncIngestFailed("validation")
	m.IncSlackNotifSent()

	assert.Equal(t, 1, inner.ReportsIngested())
	assert.Equal(t, 2, inner.PlayersCreated())
	assert.Equal(t, 1, inner.IngestFailed("validation"))
	assert.Equal(t, 1, inner.SlackNotifSent())
	assert.Equal(t, map[string]int{
		CounterReportsIngested: 1,
		CounterPlayersCreated:  2,
		CounterIngestFailed:    1,
	}, counters.Counters)
}

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncReportsIngested()
	s.IncIngestFailed("parse")
	s.IncIngestFailed("parse")
	s.AddPlayersCreated(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.ReportsIngested))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.IngestFailed.WithLabelValues("parse")))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.PlayersCreated))
}
