// Package stats computes leaderboards and match statistics from the full
// match history. Every query rescans the history; nothing is cached.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/resolver"
)

// Service answers statistics queries.
type Service struct {
	loader  HistoryLoader
	metrics metrics.Metrics
}

// NewService creates a Service reading history from loader.
func NewService(loader HistoryLoader, metrics metrics.Metrics) *Service {
	return &Service{loader: loader, metrics: metrics}
}

func (s *Service) load(ctx context.Context, query string) (*History, func(), error) {
	start := time.Now()
	h, err := s.loader.LoadHistory(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load match history")
	}
	done := func() {
		d := time.Since(start)
		s.metrics.ObserveStatsDuration(d.Seconds())
		log.Debug("Stats computed", "query", query, "matches", len(h.Matches), "duration_ms", d.Milliseconds())
	}
	return h, done, nil
}

func (s *Service) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	h, done, err := s.load(ctx, "leaderboard")
	if err != nil {
		return nil, err
	}
	defer done()
	lb := ComputeLeaderboard(h)
	return &lb, nil
}

func (s *Service) MatchStats(ctx context.Context) (*MatchStats, error) {
	h, done, err := s.load(ctx, "match-stats")
	if err != nil {
		return nil, err
	}
	defer done()
	ms := ComputeMatchStats(h)
	return &ms, nil
}

func (s *Service) PlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	h, done, err := s.load(ctx, "player-stats")
	if err != nil {
		return nil, err
	}
	defer done()
	return ComputePlayerStats(h, playerID)
}

// PlayerStatsByName looks the player up with the same exact-then-fuzzy rule
// ingestion uses. It never creates a player.
func (s *Service) PlayerStatsByName(ctx context.Context, name string) (*PlayerStats, error) {
	h, done, err := s.load(ctx, "player-stats")
	if err != nil {
		return nil, err
	}
	defer done()

	players := make([]league.Player, 0, len(h.Players))
	for _, p := range h.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	p, ok := resolver.NewRoster(players, nil).Find(name)
	if !ok {
		return nil, league.NotFoundf("no player matches '%s'", name)
	}
	return ComputePlayerStats(h, p.ID)
}

// StoreLoader reads the history straight from the league store.
type StoreLoader struct {
	store league.Store
}

var _ HistoryLoader = (*StoreLoader)(nil)

func NewStoreLoader(store league.Store) *StoreLoader {
	return &StoreLoader{store: store}
}

func (l *StoreLoader) LoadHistory(ctx context.Context) (*History, error) {
	matches, err := l.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	players, err := l.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	h := &History{Matches: matches, Players: make(map[string]league.Player, len(players))}
	for _, p := range players {
		h.Players[p.ID] = p
	}
	return h, nil
}
