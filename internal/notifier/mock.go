package notifier

import (
	"context"
	"sync"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendMatchAnnouncementFunc func(event league.MatchRecorded, dryRun bool) error
	SendLeaderboardFunc       func(lb *stats.Leaderboard, dryRun bool) error

	// Spies for format functions
	FormatIngestResponseFunc         func(res *league.IngestResult) (any, error)
	FormatLeaderboardResponseFunc    func(lb *stats.Leaderboard) (any, error)
	FormatMatchStatsResponseFunc     func(ms *stats.MatchStats) (any, error)
	FormatPlayerStatsResponseFunc    func(ps *stats.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
	FormatErrorResponseFunc          func(err error) (any, error)

	// Call records
	SendMatchAnnouncementCalls []league.MatchRecorded
	SendLeaderboardCalls       []*stats.Leaderboard
	DryRuns                    []bool

	// Call records for format functions
	LastIngestResponse         *league.IngestResult
	LastLeaderboardResponse    *stats.Leaderboard
	LastMatchStatsResponse     *stats.MatchStats
	LastPlayerStatsResponse    *stats.PlayerStats
	LastPlayerNotFoundResponse string
	LastErrorResponse          error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchAnnouncementCalls = nil
	m.SendLeaderboardCalls = nil
	m.DryRuns = nil
	m.LastIngestResponse = nil
	m.LastLeaderboardResponse = nil
	m.LastMatchStatsResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = ""
	m.LastErrorResponse = nil
}

func (m *Mock) SendMatchAnnouncement(ctx context.Context, event league.MatchRecorded, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchAnnouncementCalls = append(m.SendMatchAnnouncementCalls, event)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendMatchAnnouncementFunc != nil {
		return m.SendMatchAnnouncementFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(ctx context.Context, lb *stats.Leaderboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, lb)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(lb, dryRun)
	}
	return nil
}

func (m *Mock) FormatIngestResponse(res *league.IngestResult) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastIngestResponse = res
	if m.FormatIngestResponseFunc != nil {
		return m.FormatIngestResponseFunc(res)
	}
	return "formatted_ingest", nil
}

func (m *Mock) FormatLeaderboardResponse(lb *stats.Leaderboard) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastLeaderboardResponse = lb
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(lb)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatMatchStatsResponse(ms *stats.MatchStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastMatchStatsResponse = ms
	if m.FormatMatchStatsResponseFunc != nil {
		return m.FormatMatchStatsResponseFunc(ms)
	}
	return "formatted_match_stats", nil
}

func (m *Mock) FormatPlayerStatsResponse(ps *stats.PlayerStats, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerStatsResponse = ps
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(ps, query)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPlayerNotFoundResponse = query
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}

func (m *Mock) FormatErrorResponse(err error) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastErrorResponse = err
	if m.FormatErrorResponseFunc != nil {
		return m.FormatErrorResponseFunc(err)
	}
	return "formatted_error", nil
}
