package stats

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyBuilder assembles a History; player ids are the lower-cased first
// letter of each name.
type historyBuilder struct {
	h *History
}

func newHistory(names ...string) *historyBuilder {
	h := &History{Players: make(map[string]league.Player)}
	for _, n := range names {
		id := strings.ToLower(n[:1])
		h.Players[id] = league.Player{ID: id, Name: n}
	}
	return &historyBuilder{h: h}
}

func (b *historyBuilder) match(date, location string, white, black []string, winner league.Side) *historyBuilder {
	n := len(b.h.Matches) + 1
	d, err := time.Parse(league.DateLayout, date)
	if err != nil {
		panic(err)
	}
	m := league.Match{
		ID:           fmt.Sprintf("m%d", n),
		Date:         d,
		LocationName: location,
		White:        league.Team{ID: fmt.Sprintf("w%d", n), PlayerIDs: white},
		Black:        league.Team{ID: fmt.Sprintf("b%d", n), PlayerIDs: black},
	}
	if winner != "" {
		id := m.Team(winner).ID
		m.WinnerTeamID = &id
	}
	b.h.Matches = append(b.h.Matches, m)
	return b
}

// season is four matches between Ana, Beto, Caro and Dani.
func season() *History {
	return newHistory("Ana", "Beto", "Caro", "Dani").
		match("2026-01-10", "CUM", []string{"a", "b"}, []string{"c", "d"}, league.SideWhite).
		match("2026-01-20", "CUM", []string{"a", "b"}, []string{"c", "d"}, league.SideWhite).
		match("2026-02-05", "INDU", []string{"a", "c"}, []string{"b", "d"}, league.SideBlack).
		match("2026-02-10", "CUM", []string{"a", "b"}, []string{"c", "d"}, league.SideBlack).
		h
}

func TestComputeLeaderboard(t *testing.T) {
	got := ComputeLeaderboard(season())

	want := Leaderboard{
		MostGames: []PlayerRanking{
			{PlayerID: "a", PlayerName: "Ana", Value: 4, WinRate: 50},
			{PlayerID: "b", PlayerName: "Beto", Value: 4, WinRate: 75},
			{PlayerID: "c", PlayerName: "Caro", Value: 4, WinRate: 25},
			{PlayerID: "d", PlayerName: "Dani", Value: 4, WinRate: 50},
		},
		MostWins: []PlayerRanking{
			{PlayerID: "b", PlayerName: "Beto", Value: 3, WinRate: 75},
			{PlayerID: "a", PlayerName: "Ana", Value: 2, WinRate: 50},
			{PlayerID: "d", PlayerName: "Dani", Value: 2, WinRate: 50},
			{PlayerID: "c", PlayerName: "Caro", Value: 1, WinRate: 25},
		},
		BestWinRate: []PlayerRanking{
			{PlayerID: "b", PlayerName: "Beto", Value: 4, WinRate: 75},
			{PlayerID: "a", PlayerName: "Ana", Value: 4, WinRate: 50},
			{PlayerID: "d", PlayerName: "Dani", Value: 4, WinRate: 50},
			{PlayerID: "c", PlayerName: "Caro", Value: 4, WinRate: 25},
		},
		CurrentStreaks: []PlayerStreak{
			{PlayerID: "a", PlayerName: "Ana", StreakType: "L", StreakCount: 2},
			{PlayerID: "d", PlayerName: "Dani", StreakType: "W", StreakCount: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeLeaderboard() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	got := ComputeLeaderboard(newHistory().h)
	assert.Empty(t, got.MostGames)
	assert.Empty(t, got.MostWins)
	assert.Empty(t, got.BestWinRate)
	assert.Empty(t, got.CurrentStreaks)
}

func TestBestWinRateNeedsThreeGames(t *testing.T) {
	h := newHistory("Ana", "Beto").
		match("2026-01-01", "CUM", []string{"a"}, []string{"b"}, league.SideWhite).
		match("2026-01-02", "CUM", []string{"a"}, []string{"b"}, league.SideWhite).
		h

	got := ComputeLeaderboard(h)
	assert.Empty(t, got.BestWinRate)
	require.Len(t, got.MostWins, 2)
	assert.Equal(t, 100.0, got.MostWins[0].WinRate)
	assert.Equal(t, 0.0, got.MostWins[1].WinRate)
}

func TestLeaderboardTopTen(t *testing.T) {
	white := []string{"a", "b", "c", "d", "e", "f"}
	black := []string{"g", "h", "i", "j", "k", "l"}
	h := newHistory("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L").
		match("2026-01-01", "CUM", white, black, league.SideWhite).
		match("2026-01-02", "CUM", white, black, league.SideWhite).
		h

	got := ComputeLeaderboard(h)
	assert.Len(t, got.MostGames, 10)
	assert.Len(t, got.MostWins, 10)
	assert.Equal(t, "a", got.MostWins[0].PlayerID)
	assert.Len(t, got.CurrentStreaks, 10, "12 players hold a streak of two")
}

func TestCurrentStreak(t *testing.T) {
	W, L, D := league.ResultWin, league.ResultLoss, league.ResultDraw
	tests := []struct {
		name      string
		results   []league.Result
		wantType  string
		wantCount int
	}{
		{"two wins then a loss", []league.Result{W, W, L, W}, "W", 2},
		{"draw at the front", []league.Result{D, W, W}, "W", 0},
		{"draw after a run", []league.Result{L, L, L, D, L}, "L", 3},
		{"single result", []league.Result{L}, "L", 1},
		{"no matches", nil, "W", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, count := CurrentStreak(tt.results)
			assert.Equal(t, tt.wantType, kind)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestStreakIgnoresMatchesWithoutThePlayer(t *testing.T) {
	h := newHistory("Ana", "Beto", "Caro").
		match("2026-01-01", "CUM", []string{"a"}, []string{"b"}, league.SideWhite).
		match("2026-01-02", "CUM", []string{"b"}, []string{"c"}, "").
		match("2026-01-03", "CUM", []string{"a"}, []string{"c"}, league.SideWhite).
		h

	got := ComputeLeaderboard(h)
	require.Len(t, got.CurrentStreaks, 1)
	assert.Equal(t, PlayerStreak{PlayerID: "a", PlayerName: "Ana", StreakType: "W", StreakCount: 2}, got.CurrentStreaks[0])
}

func TestComputeMatchStats(t *testing.T) {
	got := ComputeMatchStats(season())

	want := MatchStats{
		TopPairs: []PairStats{
			{Player1Name: "Ana", Player2Name: "Beto", GamesPlayed: 3, Wins: 2, WinRate: 66.7},
			{Player1Name: "Caro", Player2Name: "Dani", GamesPlayed: 3, Wins: 1, WinRate: 33.3},
		},
		GamesOverTime: []MonthlyGames{
			{Month: "01/2026", GamesCount: 2},
			{Month: "02/2026", GamesCount: 2},
		},
		LocationBreakdown: []LocationGames{
			{LocationName: "CUM", GamesCount: 3},
			{LocationName: "INDU", GamesCount: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeMatchStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopPairs(t *testing.T) {
	t.Run("one shared game is not enough", func(t *testing.T) {
		h := newHistory("Ana", "Beto", "Caro", "Dani").
			match("2026-01-01", "CUM", []string{"a", "b"}, []string{"c", "d"}, league.SideWhite).
			h
		assert.Empty(t, ComputeMatchStats(h).TopPairs)
	})

	t.Run("two wins in two games is exactly 100", func(t *testing.T) {
		h := newHistory("Ana", "Beto", "Caro", "Dani").
			match("2026-01-01", "CUM", []string{"b", "a"}, []string{"c", "d"}, league.SideWhite).
			match("2026-01-08", "CUM", []string{"a", "b"}, []string{"c", "d"}, league.SideWhite).
			h
		pairs := ComputeMatchStats(h).TopPairs
		require.Len(t, pairs, 2)
		assert.Equal(t, PairStats{Player1Name: "Ana", Player2Name: "Beto", GamesPlayed: 2, Wins: 2, WinRate: 100.0}, pairs[0])
		assert.Equal(t, 0.0, pairs[1].WinRate)
	})

	t.Run("ties on win rate prefer more games", func(t *testing.T) {
		h := newHistory("Ana", "Beto", "Caro", "Dani").
			match("2026-01-01", "CUM", []string{"c", "d"}, []string{"a"}, league.SideWhite).
			match("2026-01-02", "CUM", []string{"c", "d"}, []string{"b"}, league.SideWhite).
			match("2026-01-03", "CUM", []string{"a", "b"}, []string{"c"}, league.SideWhite).
			match("2026-01-04", "CUM", []string{"a", "b"}, []string{"c"}, league.SideWhite).
			match("2026-01-05", "CUM", []string{"a", "b"}, []string{"d"}, league.SideWhite).
			h
		pairs := ComputeMatchStats(h).TopPairs
		require.Len(t, pairs, 2)
		assert.Equal(t, "Ana", pairs[0].Player1Name)
		assert.Equal(t, 3, pairs[0].GamesPlayed)
		assert.Equal(t, "Caro", pairs[1].Player1Name)
	})
}

func TestGamesOverTimeSortsAcrossYears(t *testing.T) {
	h := newHistory("Ana", "Beto").
		match("2025-12-30", "CUM", []string{"a"}, []string{"b"}, "").
		match("2026-01-02", "CUM", []string{"a"}, []string{"b"}, "").
		match("2026-01-05", "CUM", []string{"a"}, []string{"b"}, "").
		h
	got := ComputeMatchStats(h).GamesOverTime
	assert.Equal(t, []MonthlyGames{{"12/2025", 1}, {"01/2026", 2}}, got)
}

func TestComputePlayerStats(t *testing.T) {
	got, err := ComputePlayerStats(season(), "a")
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalGames)
	assert.Equal(t, 2, got.Wins)
	assert.Equal(t, 2, got.Losses)
	assert.Equal(t, 0, got.Draws)
	assert.Equal(t, 50.0, got.WinRate)

	require.Len(t, got.RecentMatches, 4)
	latest := got.RecentMatches[0]
	assert.Equal(t, PlayerMatch{
		MatchID:       "m4",
		Date:          "2026-02-10",
		LocationName:  "CUM",
		TeamColor:     league.SideWhite,
		TeammateNames: []string{"Beto"},
		OpponentNames: []string{"Caro", "Dani"},
		Result:        league.ResultLoss,
	}, latest)
	assert.Equal(t, "m1", got.RecentMatches[3].MatchID)

	want := []Teammate{
		{PlayerID: "b", PlayerName: "Beto", GamesPlayedTogether: 3},
		{PlayerID: "c", PlayerName: "Caro", GamesPlayedTogether: 1},
	}
	if diff := cmp.Diff(want, got.TopTeammates); diff != "" {
		t.Errorf("TopTeammates mismatch (-want +got):\n%s", diff)
	}

	_, err = ComputePlayerStats(season(), "zzz")
	assert.True(t, league.IsNotFound(err))
}

type stubLoader struct {
	h   *History
	err error
}

func (s stubLoader) LoadHistory(ctx context.Context) (*History, error) { return s.h, s.err }

func TestService(t *testing.T) {
	m := metrics.NewMock()
	svc := NewService(stubLoader{h: season()}, m)
	ctx := context.Background()

	lb, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Len(t, lb.MostGames, 4)

	ms, err := svc.MatchStats(ctx)
	require.NoError(t, err)
	assert.Len(t, ms.TopPairs, 2)

	ps, err := svc.PlayerStatsByName(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, "Ana", ps.PlayerName)

	_, err = svc.PlayerStatsByName(ctx, "Zoltan")
	assert.True(t, league.IsNotFound(err))

	assert.Equal(t, 4, m.StatsQueries())

	_, err = NewService(stubLoader{err: assert.AnError}, m).Leaderboard(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPlayerStatsByNameIsStable(t *testing.T) {
	h := &History{Players: map[string]league.Player{
		"p9": {ID: "p9", Name: "ana"},
		"p1": {ID: "p1", Name: "Ana"},
		"p5": {ID: "p5", Name: "ANA"},
	}}
	svc := NewService(stubLoader{h: h}, metrics.NewMock())

	for range 20 {
		ps, err := svc.PlayerStatsByName(context.Background(), "Ana")
		require.NoError(t, err)
		assert.Equal(t, "p1", ps.PlayerID, "names equal up to case resolve to the smallest id")
	}
}
