package processor

import (
	"strings"
	"unicode"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/resolver"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	blackLabel = "negro"
	whiteLabel = "blanco"
)

// foldLabel lower-cases s and strips its diacritics, so "Négro" folds to "negro".
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// WinnerSide maps a declared winner label onto a side. Absent, blank and
// unknown labels all mean a draw; unrecognized reports whether a non-blank
// label was given that is neither "negro" nor "blanco".
func WinnerSide(label *string) (side league.Side, ok bool, unrecognized bool) {
	if label == nil || strings.TrimSpace(*label) == "" {
		return "", false, false
	}
	switch foldLabel(*label) {
	case blackLabel:
		return league.SideBlack, true, false
	case whiteLabel:
		return league.SideWhite, true, false
	}
	return "", false, true
}

// BuildMatch assembles a match with two fresh teams from a resolution. A
// player may appear only once across both teams.
func BuildMatch(res *resolver.Resolution, winnerLabel *string, newID func() string) (league.Match, error) {
	type entry struct {
		side  league.Side
		typed string
	}
	seen := make(map[string]entry)
	team := func(side league.Side, players []league.Player, typed []string) (league.Team, error) {
		t := league.Team{ID: newID(), PlayerIDs: make([]string, 0, len(players))}
		for i, p := range players {
			name := p.Name
			if i < len(typed) {
				name = typed[i]
			}
			prev, dup := seen[p.ID]
			if !dup {
				seen[p.ID] = entry{side: side, typed: name}
				t.PlayerIDs = append(t.PlayerIDs, p.ID)
				continue
			}
			reason := "cannot play for both teams"
			if prev.side == side {
				reason = "is listed twice in the same team"
			}
			if prev.typed != name {
				return league.Team{}, league.Validationf("Player '%s' %s: '%s' and '%s' both resolve to this player.", p.Name, reason, prev.typed, name)
			}
			return league.Team{}, league.Validationf("Player '%s' %s.", p.Name, reason)
		}
		return t, nil
	}

	white, err := team(league.SideWhite, res.White, res.WhiteNames)
	if err != nil {
		return league.Match{}, err
	}
	black, err := team(league.SideBlack, res.Black, res.BlackNames)
	if err != nil {
		return league.Match{}, err
	}

	m := league.Match{
		ID:           newID(),
		Date:         res.Date,
		LocationID:   res.Location.ID,
		LocationName: res.Location.Name,
		White:        white,
		Black:        black,
	}
	if side, ok, _ := WinnerSide(winnerLabel); ok {
		id := m.Team(side).ID
		m.WinnerTeamID = &id
	}
	return m, nil
}
