package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/handballito/handballito-time/internal/league"
)

// winRate is wins/games as a percentage rounded to one decimal, or 0 without games.
func winRate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.RoundToEven(float64(wins)/float64(games)*1000) / 10
}

func (h *History) name(playerID string) string {
	if p, ok := h.Players[playerID]; ok {
		return p.Name
	}
	return playerID
}

type playerTally struct {
	id    string
	games int
	wins  int
}

// ComputeLeaderboard builds the four ranked player lists. Players are
// enumerated in order of first appearance, which decides every tie.
func ComputeLeaderboard(h *History) Leaderboard {
	var order []*playerTally
	tallies := make(map[string]*playerTally)
	for _, m := range h.Matches {
		for _, side := range []league.Side{league.SideWhite, league.SideBlack} {
			won := m.ResultFor(side) == league.ResultWin
			for _, id := range m.Team(side).PlayerIDs {
				t, ok := tallies[id]
				if !ok {
					t = &playerTally{id: id}
					tallies[id] = t
					order = append(order, t)
				}
				t.games++
				if won {
					t.wins++
				}
			}
		}
	}

	ranking := func(ts []*playerTally, value func(*playerTally) int) []PlayerRanking {
		out := []PlayerRanking{}
		for _, t := range ts {
			if len(out) == topN {
				break
			}
			out = append(out, PlayerRanking{
				PlayerID:   t.id,
				PlayerName: h.name(t.id),
				Value:      value(t),
				WinRate:    winRate(t.wins, t.games),
			})
		}
		return out
	}
	games := func(t *playerTally) int { return t.games }
	wins := func(t *playerTally) int { return t.wins }

	byGames := append([]*playerTally{}, order...)
	sort.SliceStable(byGames, func(i, j int) bool { return byGames[i].games > byGames[j].games })

	byWins := append([]*playerTally{}, order...)
	sort.SliceStable(byWins, func(i, j int) bool { return byWins[i].wins > byWins[j].wins })

	var qualified []*playerTally
	for _, t := range order {
		if t.games >= minGamesForWinRate {
			qualified = append(qualified, t)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return float64(qualified[i].wins)/float64(qualified[i].games) >
			float64(qualified[j].wins)/float64(qualified[j].games)
	})

	streaks := []PlayerStreak{}
	for _, t := range order {
		kind, count := CurrentStreak(resultsNewestFirst(h.Matches, t.id))
		if count >= minStreak {
			streaks = append(streaks, PlayerStreak{
				PlayerID:    t.id,
				PlayerName:  h.name(t.id),
				StreakType:  kind,
				StreakCount: count,
			})
		}
	}
	sort.SliceStable(streaks, func(i, j int) bool { return streaks[i].StreakCount > streaks[j].StreakCount })
	if len(streaks) > topN {
		streaks = streaks[:topN]
	}

	return Leaderboard{
		MostGames:      ranking(byGames, games),
		MostWins:       ranking(byWins, wins),
		BestWinRate:    ranking(qualified, games),
		CurrentStreaks: streaks,
	}
}

// resultsNewestFirst lists the outcomes of every match playerID took part in,
// most recent first.
func resultsNewestFirst(matches []league.Match, playerID string) []league.Result {
	var results []league.Result
	for i := len(matches) - 1; i >= 0; i-- {
		if side, ok := matches[i].SideOf(playerID); ok {
			results = append(results, matches[i].ResultFor(side))
		}
	}
	return results
}

// CurrentStreak returns the run of identical outcomes at the head of results,
// which must be ordered most recent first. A draw ends the run. The type is
// "W" or "L", and "W" with a count of 0 when there is no run at all.
func CurrentStreak(results []league.Result) (string, int) {
	kind, count := "", 0
	for _, r := range results {
		if r == league.ResultDraw {
			break
		}
		k := "L"
		if r == league.ResultWin {
			k = "W"
		}
		if kind == "" {
			kind = k
		} else if k != kind {
			break
		}
		count++
	}
	if kind == "" {
		kind = "W"
	}
	return kind, count
}

type pairKey struct{ a, b string }

// ComputeMatchStats builds the pair, monthly and location views.
func ComputeMatchStats(h *History) MatchStats {
	var pairOrder []pairKey
	pairs := make(map[pairKey]*PairStats)
	for _, m := range h.Matches {
		for _, side := range []league.Side{league.SideWhite, league.SideBlack} {
			ids := append([]string{}, m.Team(side).PlayerIDs...)
			sort.Strings(ids)
			won := m.ResultFor(side) == league.ResultWin
			for i := 0; i < len(ids); i++ {
				for j := i + 1; j < len(ids); j++ {
					key := pairKey{ids[i], ids[j]}
					p, ok := pairs[key]
					if !ok {
						p = &PairStats{Player1Name: h.name(ids[i]), Player2Name: h.name(ids[j])}
						pairs[key] = p
						pairOrder = append(pairOrder, key)
					}
					p.GamesPlayed++
					if won {
						p.Wins++
					}
					p.WinRate = winRate(p.Wins, p.GamesPlayed)
				}
			}
		}
	}

	topPairs := []PairStats{}
	for _, key := range pairOrder {
		if p := pairs[key]; p.GamesPlayed >= minPairGames {
			topPairs = append(topPairs, *p)
		}
	}
	sort.SliceStable(topPairs, func(i, j int) bool {
		if topPairs[i].WinRate != topPairs[j].WinRate {
			return topPairs[i].WinRate > topPairs[j].WinRate
		}
		return topPairs[i].GamesPlayed > topPairs[j].GamesPlayed
	})
	if len(topPairs) > topN {
		topPairs = topPairs[:topN]
	}

	type month struct{ year, month int }
	var months []month
	perMonth := make(map[month]int)
	var locations []string
	perLocation := make(map[string]int)
	for _, m := range h.Matches {
		key := month{m.Date.Year(), int(m.Date.Month())}
		if _, ok := perMonth[key]; !ok {
			months = append(months, key)
		}
		perMonth[key]++

		if _, ok := perLocation[m.LocationName]; !ok {
			locations = append(locations, m.LocationName)
		}
		perLocation[m.LocationName]++
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})
	gamesOverTime := make([]MonthlyGames, 0, len(months))
	for _, k := range months {
		gamesOverTime = append(gamesOverTime, MonthlyGames{
			Month:      fmt.Sprintf("%02d/%04d", k.month, k.year),
			GamesCount: perMonth[k],
		})
	}

	sort.SliceStable(locations, func(i, j int) bool { return perLocation[locations[i]] > perLocation[locations[j]] })
	breakdown := make([]LocationGames, 0, len(locations))
	for _, name := range locations {
		breakdown = append(breakdown, LocationGames{LocationName: name, GamesCount: perLocation[name]})
	}

	return MatchStats{
		TopPairs:          topPairs,
		GamesOverTime:     gamesOverTime,
		LocationBreakdown: breakdown,
	}
}

// ComputePlayerStats builds the detail view of playerID, most recent match first.
func ComputePlayerStats(h *History, playerID string) (*PlayerStats, error) {
	player, ok := h.Players[playerID]
	if !ok {
		return nil, league.NotFoundf("player %s not found", playerID)
	}

	ps := &PlayerStats{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		RecentMatches: []PlayerMatch{},
		TopTeammates:  []Teammate{},
	}
	var mateOrder []string
	together := make(map[string]int)
	for i := len(h.Matches) - 1; i >= 0; i-- {
		m := h.Matches[i]
		side, ok := m.SideOf(playerID)
		if !ok {
			continue
		}
		result := m.ResultFor(side)
		switch result {
		case league.ResultWin:
			ps.Wins++
		case league.ResultLoss:
			ps.Losses++
		default:
			ps.Draws++
		}

		teammates := []string{}
		for _, id := range m.Team(side).PlayerIDs {
			if id == playerID {
				continue
			}
			teammates = append(teammates, h.name(id))
			if _, seen := together[id]; !seen {
				mateOrder = append(mateOrder, id)
			}
			together[id]++
		}
		opponents := []string{}
		for _, id := range m.Team(side.Opposite()).PlayerIDs {
			opponents = append(opponents, h.name(id))
		}

		ps.RecentMatches = append(ps.RecentMatches, PlayerMatch{
			MatchID:       m.ID,
			Date:          m.Date.Format(league.DateLayout),
			LocationName:  m.LocationName,
			TeamColor:     side,
			TeammateNames: teammates,
			OpponentNames: opponents,
			Result:        result,
		})
	}
	ps.TotalGames = len(ps.RecentMatches)
	ps.WinRate = winRate(ps.Wins, ps.TotalGames)

	sort.SliceStable(mateOrder, func(i, j int) bool { return together[mateOrder[i]] > together[mateOrder[j]] })
	for _, id := range mateOrder {
		if len(ps.TopTeammates) == topTeammates {
			break
		}
		ps.TopTeammates = append(ps.TopTeammates, Teammate{
			PlayerID:            id,
			PlayerName:          h.name(id),
			GamesPlayedTogether: together[id],
		})
	}
	return ps, nil
}
