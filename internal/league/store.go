package league

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ Store = (*store)(nil)
var _ Tx = (*txStore)(nil)

// New creates a new Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

func (s *store) AddPlayer(ctx context.Context, name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validationf("player name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Player{ID: uuid.NewString(), Name: name}
	if err := insertPlayer(ctx, s.db, p, s.now()); err != nil {
		return nil, err
	}
	log.Info("Player added", "playerID", p.ID, "name", p.Name)
	return &p, nil
}

func (s *store) GetPlayer(ctx context.Context, id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM players WHERE id = ?", id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundf("player %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get player")
	}
	return &p, nil
}

func (s *store) ListPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listPlayers(ctx, s.db)
}

func (s *store) AddLocation(ctx context.Context, name string, address *string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validationf("location name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l := Location{ID: uuid.NewString(), Name: name, Address: address}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO locations (id, name, address, created_at) VALUES (?, ?, ?, ?)",
		l.ID, l.Name, address, s.now().UnixNano())
	if err != nil {
		return nil, errors.Wrap(err, "insert location")
	}
	log.Info("Location added", "locationID", l.ID, "name", l.Name)
	return &l, nil
}

func (s *store) UpdateLocation(ctx context.Context, id, name string, address *string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validationf("location name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE locations SET name = ?, address = ? WHERE id = ?", name, address, id)
	if err != nil {
		return nil, errors.Wrap(err, "update location")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, NotFoundf("location %s not found", id)
	}
	return &Location{ID: id, Name: name, Address: address}, nil
}

func (s *store) GetLocation(ctx context.Context, id string) (*Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getLocation(ctx, s.db, id)
}

func (s *store) ListLocations(ctx context.Context) ([]Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listLocations(ctx, s.db)
}

// AddMatch records a match between existing players at an existing location.
func (s *store) AddMatch(ctx context.Context, nm NewMatch) (*Match, error) {
	var created Match
	err := s.WithTx(ctx, func(tx Tx) error {
		ts := tx.(*txStore)
		loc, err := getLocation(ctx, ts.tx, nm.LocationID)
		if err != nil {
			if IsNotFound(err) {
				return Validationf("invalid location id %s", nm.LocationID)
			}
			return err
		}
		if err := validateTeams(ctx, ts.tx, nm.WhitePlayerIDs, nm.BlackPlayerIDs); err != nil {
			return err
		}

		created = Match{
			ID:           uuid.NewString(),
			Date:         truncateDate(nm.Date),
			LocationID:   loc.ID,
			LocationName: loc.Name,
			White:        Team{ID: uuid.NewString(), PlayerIDs: nm.WhitePlayerIDs},
			Black:        Team{ID: uuid.NewString(), PlayerIDs: nm.BlackPlayerIDs},
		}
		if nm.Winner != "" {
			winner := created.Team(nm.Winner).ID
			created.WinnerTeamID = &winner
		}
		return tx.InsertMatch(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *store) UpdateMatch(ctx context.Context, id string, u MatchUpdate) (*Match, error) {
	var updated *Match
	err := s.WithTx(ctx, func(tx Tx) error {
		q := tx.(*txStore).tx
		matches, err := loadMatches(ctx, q, "WHERE m.id = ?", id)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return NotFoundf("match %s not found", id)
		}
		m := matches[0]

		if u.LocationID != nil {
			loc, err := getLocation(ctx, q, *u.LocationID)
			if err != nil {
				if IsNotFound(err) {
					return Validationf("invalid location id %s", *u.LocationID)
				}
				return err
			}
			m.LocationID, m.LocationName = loc.ID, loc.Name
		}
		if u.WinnerTeamID != nil {
			if *u.WinnerTeamID != m.White.ID && *u.WinnerTeamID != m.Black.ID {
				return Validationf("winner team %s does not play in match %s", *u.WinnerTeamID, id)
			}
			winner := *u.WinnerTeamID
			m.WinnerTeamID = &winner
		}
		if err := validateTeams(ctx, q, u.WhitePlayerIDs, u.BlackPlayerIDs); err != nil {
			return err
		}
		m.Date = truncateDate(u.Date)
		m.White.PlayerIDs = u.WhitePlayerIDs
		m.Black.PlayerIDs = u.BlackPlayerIDs

		_, err = q.ExecContext(ctx,
			"UPDATE matches SET date = ?, location_id = ?, winner_team_id = ? WHERE id = ?",
			m.Date.Format(DateLayout), m.LocationID, m.WinnerTeamID, m.ID)
		if err != nil {
			return errors.Wrap(err, "update match")
		}
		for _, team := range []Team{m.White, m.Black} {
			if _, err := q.ExecContext(ctx, "DELETE FROM team_players WHERE team_id = ?", team.ID); err != nil {
				return errors.Wrap(err, "clear team players")
			}
			if err := insertTeamPlayers(ctx, q, team); err != nil {
				return err
			}
		}
		updated = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *store) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := loadMatches(ctx, s.db, "WHERE m.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, NotFoundf("match %s not found", id)
	}
	return &matches[0], nil
}

func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadMatches(ctx, s.db, "")
}

// WithTx holds the write lock for the whole transaction, so at most one
// ingestion resolves against the roster at a time.
func (s *store) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	if err := fn(&txStore{tx: tx, now: s.now}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Clear removes all data from the store.
func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"matches", "team_players", "teams", "players", "locations"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}
	log.Info("Store cleared")
	return nil
}

func (t *txStore) ListPlayers(ctx context.Context) ([]Player, error) {
	return listPlayers(ctx, t.tx)
}

func (t *txStore) ListLocations(ctx context.Context) ([]Location, error) {
	return listLocations(ctx, t.tx)
}

func (t *txStore) InsertPlayer(ctx context.Context, p Player) error {
	return insertPlayer(ctx, t.tx, p, t.now())
}

// InsertMatch persists both teams, their memberships and the match row.
func (t *txStore) InsertMatch(ctx context.Context, m Match) error {
	for _, team := range []Team{m.White, m.Black} {
		if _, err := t.tx.ExecContext(ctx, "INSERT INTO teams (id) VALUES (?)", team.ID); err != nil {
			return errors.Wrap(err, "insert team")
		}
		if err := insertTeamPlayers(ctx, t.tx, team); err != nil {
			return err
		}
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO matches (id, date, location_id, white_team_id, black_team_id, winner_team_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Date.Format(DateLayout), m.LocationID, m.White.ID, m.Black.ID, m.WinnerTeamID, t.now().UnixNano())
	if err != nil {
		return errors.Wrap(err, "insert match")
	}
	log.Debug("Match inserted", "matchID", m.ID, "date", m.Date.Format(DateLayout))
	return nil
}

func insertPlayer(ctx context.Context, q querier, p Player, at time.Time) error {
	_, err := q.ExecContext(ctx, "INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)", p.ID, p.Name, at.UnixNano())
	return errors.Wrap(err, "insert player")
}

func insertTeamPlayers(ctx context.Context, q querier, team Team) error {
	for i, playerID := range team.PlayerIDs {
		_, err := q.ExecContext(ctx,
			"INSERT INTO team_players (team_id, player_id, position) VALUES (?, ?, ?)", team.ID, playerID, i)
		if err != nil {
			return errors.Wrap(err, "insert team player")
		}
	}
	return nil
}

func listPlayers(ctx context.Context, q querier) ([]Player, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM players ORDER BY created_at, rowid")
	if err != nil {
		return nil, errors.Wrap(err, "list players")
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, errors.Wrap(err, "scan player")
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func getLocation(ctx context.Context, q querier, id string) (*Location, error) {
	var l Location
	var address sql.NullString
	err := q.QueryRowContext(ctx, "SELECT id, name, address FROM locations WHERE id = ?", id).Scan(&l.ID, &l.Name, &address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundf("location %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get location")
	}
	if address.Valid {
		l.Address = &address.String
	}
	return &l, nil
}

func listLocations(ctx context.Context, q querier) ([]Location, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, address FROM locations ORDER BY created_at, rowid")
	if err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var l Location
		var address sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &address); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		if address.Valid {
			addr := address.String
			l.Address = &addr
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// loadMatches scans the matches selected by where and attaches their team rosters.
func loadMatches(ctx context.Context, q querier, where string, args ...any) ([]Match, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT m.id, m.date, m.location_id, l.name, m.white_team_id, m.black_team_id, m.winner_team_id
		FROM matches m
		JOIN locations l ON l.id = m.location_id
		`+where+`
		ORDER BY m.date, m.created_at, m.rowid`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list matches")
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		var date string
		var winner sql.NullString
		if err := rows.Scan(&m.ID, &date, &m.LocationID, &m.LocationName, &m.White.ID, &m.Black.ID, &winner); err != nil {
			return nil, errors.Wrap(err, "scan match")
		}
		m.Date, err = time.Parse(DateLayout, date)
		if err != nil {
			return nil, errors.Wrapf(err, "parse date of match %s", m.ID)
		}
		if winner.Valid {
			w := winner.String
			m.WinnerTeamID = &w
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate matches")
	}
	rows.Close()
	if len(matches) == 0 {
		return matches, nil
	}

	members, err := loadTeamPlayers(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].White.PlayerIDs = nonNil(members[matches[i].White.ID])
		matches[i].Black.PlayerIDs = nonNil(members[matches[i].Black.ID])
	}
	return matches, nil
}

func loadTeamPlayers(ctx context.Context, q querier) (map[string][]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT team_id, player_id FROM team_players ORDER BY team_id, position")
	if err != nil {
		return nil, errors.Wrap(err, "list team players")
	}
	defer rows.Close()

	members := make(map[string][]string)
	for rows.Next() {
		var teamID, playerID string
		if err := rows.Scan(&teamID, &playerID); err != nil {
			return nil, errors.Wrap(err, "scan team player")
		}
		members[teamID] = append(members[teamID], playerID)
	}
	return members, rows.Err()
}

// validateTeams checks that both rosters are disjoint and reference existing players.
func validateTeams(ctx context.Context, q querier, white, black []string) error {
	seen := make(map[string]bool, len(white)+len(black))
	for _, id := range append(append([]string{}, white...), black...) {
		if seen[id] {
			return Validationf("player %s appears more than once in the match", id)
		}
		seen[id] = true
	}
	if len(seen) == 0 {
		return Validationf("a match needs at least one player")
	}
	for id := range seen {
		var exists int
		err := q.QueryRowContext(ctx, "SELECT COUNT(1) FROM players WHERE id = ?", id).Scan(&exists)
		if err != nil {
			return errors.Wrap(err, "check player")
		}
		if exists == 0 {
			return Validationf("one or more player ids are invalid: %s", id)
		}
	}
	return nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
