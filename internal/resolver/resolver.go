// Package resolver maps the free-text names of a scoreboard report onto the
// league's players and venues.
package resolver

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/handballito/handballito-time/internal/league"
)

var dateLayouts = []string{league.DateLayout, "02/01/2006"}

// Resolution is an ExtractedMatchData with every reference bound to an entity.
type Resolution struct {
	Date     time.Time
	Location league.Location
	White    []league.Player
	Black    []league.Player
	// WhiteNames and BlackNames are the names as typed, index-aligned with
	// White and Black.
	WhiteNames []string
	BlackNames []string
	// Created holds the players that did not exist before this resolution.
	Created []league.Player
}

// Resolver binds report names to roster entities.
type Resolver struct {
	newID func() string
}

// New creates a Resolver that assigns random UUIDs to new players.
func New() *Resolver {
	return &Resolver{newID: uuid.NewString}
}

// NewWithIDs creates a Resolver with a custom id source for new players.
func NewWithIDs(newID func() string) *Resolver {
	return &Resolver{newID: newID}
}

// Resolve binds data to the given roster and venues. The white team is
// resolved before the black team against one shared working set, so new
// players created for one side are visible to the other.
func (r *Resolver) Resolve(data league.ExtractedMatchData, players []league.Player, locations []league.Location) (*Resolution, error) {
	date, err := ParseDate(data.Date)
	if err != nil {
		return nil, err
	}
	loc, err := FindLocation(locations, data.Location)
	if err != nil {
		return nil, err
	}

	roster := NewRoster(players, r.newID)
	res := &Resolution{
		Date:       date,
		Location:   loc,
		White:      make([]league.Player, 0, len(data.WhiteTeamNames)),
		Black:      make([]league.Player, 0, len(data.BlackTeamNames)),
		WhiteNames: data.WhiteTeamNames,
		BlackNames: data.BlackTeamNames,
	}
	for _, name := range data.WhiteTeamNames {
		res.White = append(res.White, roster.Resolve(name))
	}
	for _, name := range data.BlackTeamNames {
		res.Black = append(res.Black, roster.Resolve(name))
	}
	res.Created = roster.Created()
	return res, nil
}

// ParseDate accepts "YYYY-MM-DD" and "DD/MM/YYYY" and returns the calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, league.Validationf("Could not parse date '%s'.", s)
}

// FindLocation selects a venue by exact (case-insensitive) name, falling back
// to the best fuzzy match at or above FuzzyThreshold. Venues are never created.
func FindLocation(locations []league.Location, name string) (league.Location, error) {
	for _, l := range locations {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}

	cs := make([]candidate, len(locations))
	for i, l := range locations {
		cs[i] = candidate{index: i, name: l.Name, id: l.ID, score: Ratio(l.Name, name)}
	}
	if top, ok := best(cs); ok && top.score >= FuzzyThreshold {
		return locations[top.index], nil
	}
	return league.Location{}, league.NotFoundf("Location '%s' not found. Please create the location first.", name)
}
