package stats

import (
	"context"

	"github.com/handballito/handballito-time/internal/league"
)

const (
	topN               = 10
	topTeammates       = 5
	minGamesForWinRate = 3
	minStreak          = 2
	minPairGames       = 2
)

// History is the complete match record plus the players it references.
// Matches are ordered by date ascending.
type History struct {
	Matches []league.Match
	Players map[string]league.Player
}

// HistoryLoader supplies the history every aggregation is computed from.
type HistoryLoader interface {
	LoadHistory(ctx context.Context) (*History, error)
}

type Leaderboard struct {
	MostGames      []PlayerRanking `json:"most_games"`
	MostWins       []PlayerRanking `json:"most_wins"`
	BestWinRate    []PlayerRanking `json:"best_win_rate"`
	CurrentStreaks []PlayerStreak  `json:"current_streaks"`
}

// PlayerRanking is one leaderboard row. Value holds games for the most-games
// and best-win-rate lists and wins for the most-wins list.
type PlayerRanking struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Value      int     `json:"value"`
	WinRate    float64 `json:"win_rate"`
}

type PlayerStreak struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	StreakType  string `json:"streak_type"`
	StreakCount int    `json:"streak_count"`
}

type MatchStats struct {
	TopPairs          []PairStats     `json:"top_pairs"`
	GamesOverTime     []MonthlyGames  `json:"games_over_time"`
	LocationBreakdown []LocationGames `json:"location_breakdown"`
}

type PairStats struct {
	Player1Name string  `json:"player1_name"`
	Player2Name string  `json:"player2_name"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
}

type MonthlyGames struct {
	Month      string `json:"month"`
	GamesCount int    `json:"games_count"`
}

type LocationGames struct {
	LocationName string `json:"location_name"`
	GamesCount   int    `json:"games_count"`
}

// PlayerStats is the detail view of a single player.
type PlayerStats struct {
	PlayerID      string        `json:"player_id"`
	PlayerName    string        `json:"player_name"`
	TotalGames    int           `json:"total_games"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	Draws         int           `json:"draws"`
	WinRate       float64       `json:"win_rate"`
	RecentMatches []PlayerMatch `json:"recent_matches"`
	TopTeammates  []Teammate    `json:"top_teammates"`
}

type PlayerMatch struct {
	MatchID       string        `json:"match_id"`
	Date          string        `json:"date"`
	LocationName  string        `json:"location_name"`
	TeamColor     league.Side   `json:"team_color"`
	TeammateNames []string      `json:"teammate_names"`
	OpponentNames []string      `json:"opponent_names"`
	Result        league.Result `json:"result"`
}

type Teammate struct {
	PlayerID            string `json:"player_id"`
	PlayerName          string `json:"player_name"`
	GamesPlayedTogether int    `json:"games_played_together"`
}
