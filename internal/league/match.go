package league

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

// Team returns the team playing on the given side.
func (m Match) Team(side Side) Team {
	if side == SideBlack {
		return m.Black
	}
	return m.White
}

// SideOf reports which side the player was on, if any.
func (m Match) SideOf(playerID string) (Side, bool) {
	for _, id := range m.White.PlayerIDs {
		if id == playerID {
			return SideWhite, true
		}
	}
	for _, id := range m.Black.PlayerIDs {
		if id == playerID {
			return SideBlack, true
		}
	}
	return "", false
}

// WinnerSide returns the winning side, or false for a draw.
func (m Match) WinnerSide() (Side, bool) {
	if m.WinnerTeamID == nil {
		return "", false
	}
	switch *m.WinnerTeamID {
	case m.White.ID:
		return SideWhite, true
	case m.Black.ID:
		return SideBlack, true
	}
	return "", false
}

// ResultFor is the outcome of the match for a player on the given side.
func (m Match) ResultFor(side Side) Result {
	winner, ok := m.WinnerSide()
	switch {
	case !ok:
		return ResultDraw
	case winner == side:
		return ResultWin
	default:
		return ResultLoss
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// MarshalJSON writes the match date as a plain calendar date.
func (m Match) MarshalJSON() ([]byte, error) {
	type plain Match
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{plain(m), m.Date.Format(DateLayout)})
}

func (m *Match) UnmarshalJSON(b []byte) error {
	type plain Match
	aux := struct {
		*plain
		Date string `json:"date"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.Date = time.Time{}
	if aux.Date == "" {
		return nil
	}
	date, err := time.Parse(DateLayout, aux.Date)
	if err != nil {
		return errors.Wrapf(err, "match date %q", aux.Date)
	}
	m.Date = date
	return nil
}
