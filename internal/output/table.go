// Package output renders league views as terminal tables for the CLI.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/stats"
	"github.com/olekukonko/tablewriter"
)

// Table renders a bordered ASCII table to the given writer.
func Table(w io.Writer, headers []string, rows [][]string) error {
	t := tablewriter.NewWriter(w)
	t.Header(toAny(headers)...)
	if err := t.Bulk(rows); err != nil {
		return err
	}
	return t.Render()
}

// toAny converts a string slice to an any slice for tablewriter.Header.
func toAny(s []string) []any {
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = v
	}
	return result
}

// FormatWinRate renders a percentage with one decimal.
func FormatWinRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func Players(w io.Writer, players []league.Player) error {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{p.ID, p.Name}
	}
	return Table(w, []string{"ID", "Name"}, rows)
}

func Locations(w io.Writer, locations []league.Location) error {
	rows := make([][]string, len(locations))
	for i, l := range locations {
		address := ""
		if l.Address != nil {
			address = *l.Address
		}
		rows[i] = []string{l.ID, l.Name, address}
	}
	return Table(w, []string{"ID", "Name", "Address"}, rows)
}

func rankings(w io.Writer, title, valueHeader string, list []stats.PlayerRanking) error {
	fmt.Fprintln(w, title)
	rows := make([][]string, len(list))
	for i, r := range list {
		rows[i] = []string{strconv.Itoa(i + 1), r.PlayerName, strconv.Itoa(r.Value), FormatWinRate(r.WinRate)}
	}
	return Table(w, []string{"#", "Player", valueHeader, "Win rate"}, rows)
}

// Leaderboard prints the four leaderboard lists one after the other.
func Leaderboard(w io.Writer, lb *stats.Leaderboard) error {
	if err := rankings(w, "Most games", "Games", lb.MostGames); err != nil {
		return err
	}
	if err := rankings(w, "Most wins", "Wins", lb.MostWins); err != nil {
		return err
	}
	if err := rankings(w, "Best win rate", "Games", lb.BestWinRate); err != nil {
		return err
	}
	fmt.Fprintln(w, "Current streaks")
	rows := make([][]string, len(lb.CurrentStreaks))
	for i, s := range lb.CurrentStreaks {
		rows[i] = []string{s.PlayerName, s.StreakType, strconv.Itoa(s.StreakCount)}
	}
	return Table(w, []string{"Player", "Streak", "Length"}, rows)
}

func MatchStats(w io.Writer, ms *stats.MatchStats) error {
	fmt.Fprintln(w, "Top pairs")
	rows := make([][]string, len(ms.TopPairs))
	for i, p := range ms.TopPairs {
		rows[i] = []string{p.Player1Name + " & " + p.Player2Name, strconv.Itoa(p.GamesPlayed), strconv.Itoa(p.Wins), FormatWinRate(p.WinRate)}
	}
	if err := Table(w, []string{"Pair", "Games", "Wins", "Win rate"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(w, "Games per month")
	rows = make([][]string, len(ms.GamesOverTime))
	for i, m := range ms.GamesOverTime {
		rows[i] = []string{m.Month, strconv.Itoa(m.GamesCount)}
	}
	if err := Table(w, []string{"Month", "Games"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(w, "Games per location")
	rows = make([][]string, len(ms.LocationBreakdown))
	for i, l := range ms.LocationBreakdown {
		rows[i] = []string{l.LocationName, strconv.Itoa(l.GamesCount)}
	}
	return Table(w, []string{"Location", "Games"}, rows)
}

func PlayerStats(w io.Writer, ps *stats.PlayerStats) error {
	fmt.Fprintf(w, "%s: %d games, %d wins, %d losses, %d draws (%s)\n",
		ps.PlayerName, ps.TotalGames, ps.Wins, ps.Losses, ps.Draws, FormatWinRate(ps.WinRate))

	rows := make([][]string, len(ps.RecentMatches))
	for i, m := range ps.RecentMatches {
		rows[i] = []string{
			m.Date,
			m.LocationName,
			string(m.TeamColor),
			strings.Join(m.TeammateNames, ", "),
			strings.Join(m.OpponentNames, ", "),
			string(m.Result),
		}
	}
	if err := Table(w, []string{"Date", "Location", "Team", "With", "Against", "Result"}, rows); err != nil {
		return err
	}

	rows = make([][]string, len(ps.TopTeammates))
	for i, t := range ps.TopTeammates {
		rows[i] = []string{t.PlayerName, strconv.Itoa(t.GamesPlayedTogether)}
	}
	return Table(w, []string{"Teammate", "Games together"}, rows)
}
