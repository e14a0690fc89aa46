// Package scoreboard reads the plain-text scoreboard reports posted after a game.
//
// A report looks like:
//
//	CUM 15/02/2026 Negro
//	Negro   Blanco
//	Chris.  Guchy
//	Pende   Depol
//
// The first line carries the location, the date and an optional winner label.
// The second line names the two columns; every following line holds up to one
// player per column, separated by two or more whitespace characters.
package scoreboard

import (
	"regexp"
	"strings"

	"github.com/handballito/handballito-time/internal/league"
)

var (
	datePattern   = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	columnPattern = regexp.MustCompile(`[\s\v\p{Z}\x{85}]{2,}`)
)

const blackHeader = "negro"

// Parse extracts the match data from a scoreboard report. It does not touch
// the roster: names are returned exactly as written, minus surrounding
// whitespace and dots.
func Parse(raw string) (league.ExtractedMatchData, error) {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 3 {
		return league.ExtractedMatchData{}, league.Validationf("Text must have at least a header line, a team labels line, and one player line.")
	}

	header := lines[0]
	loc := datePattern.FindStringIndex(header)
	if loc == nil {
		return league.ExtractedMatchData{}, league.Validationf("Could not find a date (DD/MM/YYYY) in the first line: '%s'.", header)
	}
	data := league.ExtractedMatchData{
		Location: strings.TrimSpace(header[:loc[0]]),
		Date:     header[loc[0]:loc[1]],
	}
	if label := strings.TrimSpace(header[loc[1]:]); label != "" {
		data.WinnerLabel = &label
	}

	var labels []string
	for _, h := range columnPattern.Split(lines[1], -1) {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			labels = append(labels, h)
		}
	}
	if len(labels) < 2 {
		return league.ExtractedMatchData{}, league.Validationf("Could not parse team headers from line: '%s'.", lines[1])
	}
	leftIsBlack := labels[0] == blackHeader

	left, right := []string{}, []string{}
	for _, line := range lines[2:] {
		var names []string
		for _, part := range columnPattern.Split(line, -1) {
			if name := cleanName(part); name != "" {
				names = append(names, name)
			}
		}
		switch {
		case len(names) >= 2:
			left = append(left, names[0])
			right = append(right, names[1])
		case len(names) == 1:
			left = append(left, names[0])
		}
	}

	if leftIsBlack {
		data.BlackTeamNames, data.WhiteTeamNames = left, right
	} else {
		data.WhiteTeamNames, data.BlackTeamNames = left, right
	}
	return data, nil
}

// cleanName strips whitespace and dots from both ends of a name.
func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ".")
	return strings.TrimSpace(s)
}
