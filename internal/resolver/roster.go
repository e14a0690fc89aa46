package resolver

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/handballito/handballito-time/internal/league"
)

// Roster is the working set of players a single resolution matches against.
// Players created while resolving are appended, so a name repeated later in
// the same report resolves to the player created for its first occurrence.
type Roster struct {
	players []league.Player
	newID   func() string
	created []league.Player
}

// NewRoster copies players into a new working set.
func NewRoster(players []league.Player, newID func() string) *Roster {
	return &Roster{
		players: append([]league.Player{}, players...),
		newID:   newID,
	}
}

// Find returns the player an exact (case-insensitive) name match selects,
// falling back to the best fuzzy match at or above FuzzyThreshold.
func (r *Roster) Find(name string) (league.Player, bool) {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}

	cs := make([]candidate, len(r.players))
	for i, p := range r.players {
		cs[i] = candidate{index: i, name: p.Name, id: p.ID, score: Ratio(p.Name, name)}
	}
	top, ok := best(cs)
	if !ok || top.score < FuzzyThreshold {
		return league.Player{}, false
	}
	log.Debug("Fuzzy matched player", "query", name, "player", top.name, "score", top.score)
	return r.players[top.index], true
}

// Resolve finds name in the roster or creates a new player for it.
func (r *Roster) Resolve(name string) league.Player {
	if p, ok := r.Find(name); ok {
		return p
	}
	p := league.Player{ID: r.newID(), Name: name}
	r.players = append(r.players, p)
	r.created = append(r.created, p)
	log.Info("Creating new player", "name", name)
	return p
}

// Created lists the players Resolve had to create, in creation order.
func (r *Roster) Created() []league.Player {
	return append([]league.Player{}, r.created...)
}
