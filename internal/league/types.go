package league

import (
	"database/sql"
	"sync"
	"time"
)

// DateLayout is the storage and wire format of a match date.
const DateLayout = "2006-01-02"

// store handles all database operations for the league.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// txStore runs the same queries as store, scoped to an open transaction.
type txStore struct {
	tx  *sql.Tx
	now func() time.Time
}

// Side identifies one of the two fixed teams of a match.
type Side string

const (
	SideWhite Side = "White"
	SideBlack Side = "Black"
)

// Result is a match outcome from a single player's point of view.
type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
	ResultDraw Result = "Draw"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// Team is the set of players on one side of a single match.
type Team struct {
	ID        string   `json:"id"`
	PlayerIDs []string `json:"player_ids"`
}

type Match struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	White        Team      `json:"white_team"`
	Black        Team      `json:"black_team"`
	WinnerTeamID *string   `json:"winner_team_id,omitempty"`
}

// NewMatch is the input for recording a match from known player ids.
type NewMatch struct {
	Date           time.Time `json:"date" validate:"required"`
	LocationID     string    `json:"location_id" validate:"required"`
	WhitePlayerIDs []string  `json:"white_player_ids" validate:"dive,required"`
	BlackPlayerIDs []string  `json:"black_player_ids" validate:"dive,required"`
	Winner         Side      `json:"winner,omitempty" validate:"omitempty,oneof=White Black"`
}

// MatchUpdate replaces the date and team memberships of a match. Nil pointers
// leave the location and winner untouched.
type MatchUpdate struct {
	Date           time.Time `json:"date" validate:"required"`
	LocationID     *string   `json:"location_id,omitempty"`
	WinnerTeamID   *string   `json:"winner_team_id,omitempty"`
	WhitePlayerIDs []string  `json:"white_player_ids" validate:"dive,required"`
	BlackPlayerIDs []string  `json:"black_player_ids" validate:"dive,required"`
}

// ExtractedMatchData is the structured content of a scoreboard report,
// before any name has been resolved against the roster.
type ExtractedMatchData struct {
	Date           string   `json:"date"`
	Location       string   `json:"location"`
	WinnerLabel    *string  `json:"winner_label,omitempty"`
	WhiteTeamNames []string `json:"white_team_names"`
	BlackTeamNames []string `json:"black_team_names"`
}

// IngestResult describes the match created from a scoreboard report.
type IngestResult struct {
	Match Match `json:"match"`
	// Extracted echoes the report as it was typed, before any name, venue or
	// date was resolved.
	Extracted               ExtractedMatchData `json:"extracted"`
	UnrecognizedWinnerLabel bool               `json:"unrecognized_winner_label"`
	CreatedPlayers          []string           `json:"created_players"`
	DryRun                  bool               `json:"dry_run"`
}

// MatchRecorded is published once an ingested match has been committed.
type MatchRecorded struct {
	MatchID        string
	Date           string
	LocationName   string
	Winner         Side
	WhiteNames     []string
	BlackNames     []string
	CreatedPlayers []string
}
