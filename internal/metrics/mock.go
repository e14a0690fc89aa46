package metrics

import (
	"context"
	"sync"
)

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	reportsIngested  int
	ingestFailed     map[string]int
	playersCreated   int
	ingestDurations  []float64
	statsDurations   []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		ingestFailed: make(map[string]int),
	}
}

func (m *Mock) IncReportsIngested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsIngested++
}

func (m *Mock) IncIngestFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestFailed[reason]++
}

func (m *Mock) AddPlayersCreated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersCreated += n
}

func (m *Mock) ObserveIngestDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestDurations = append(m.ingestDurations, duration)
}

func (m *Mock) ObserveStatsDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsDurations = append(m.statsDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ReportsIngested returns the number of times IncReportsIngested was called.
func (m *Mock) ReportsIngested() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportsIngested
}

// IngestFailed returns the number of failures recorded for reason.
func (m *Mock) IngestFailed(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ingestFailed[reason]
}

// PlayersCreated returns the sum passed to AddPlayersCreated.
func (m *Mock) PlayersCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersCreated
}

// Ingestions returns the number of observed ingest durations.
func (m *Mock) Ingestions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ingestDurations)
}

// StatsQueries returns the number of observed stats durations.
func (m *Mock) StatsQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.statsDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}

// MockCounterStore is an in-memory CounterStore.
type MockCounterStore struct {
	mu       sync.Mutex
	Counters map[string]int
	AddErr   error
}

func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{Counters: make(map[string]int)}
}

func (s *MockCounterStore) Add(ctx context.Context, key string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AddErr != nil {
		return s.AddErr
	}
	s.Counters[key] += n
	return nil
}

func (s *MockCounterStore) GetAll(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.Counters))
	for k, v := range s.Counters {
		out[k] = v
	}
	return out, nil
}
