package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/notifier"
	"github.com/handballito/handballito-time/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const (
	displayDate    = "02/01/2006"
	recentMatches  = 5
	sendTimeout    = 10 * time.Second
	noMatchesYet   = "No matches recorded yet. Go play some handball!"
	unknownWinner  = "Winner label '%s' was not recognized, the match was recorded as a draw."
	dryRunNotice   = "Dry run: nothing was saved."
	newPlayersLine = "New players created: %s"
)

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", errors.Wrap(err, "failed to post message")
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchAnnouncement(ctx context.Context, event league.MatchRecorded, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchAnnouncement(event), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, lb *stats.Leaderboard, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatLeaderboard(lb), dryRun)
	return err
}

// FormatIngestResponse formats the confirmation of an ingested scoreboard.
func (s *Notifier) FormatIngestResponse(res *league.IngestResult) (any, error) {
	return s.formatIngestResult(res), nil
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(lb *stats.Leaderboard) (any, error) {
	return s.formatLeaderboard(lb), nil
}

func (s *Notifier) FormatMatchStatsResponse(ms *stats.MatchStats) (any, error) {
	return s.formatMatchStats(ms), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(ps *stats.PlayerStats, query string) (any, error) {
	return s.formatPlayerStats(ps, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// FormatErrorResponse reports a failed command. Validation and lookup errors
// are the user's to fix; anything else is reported as unexpected.
func (s *Notifier) FormatErrorResponse(err error) (any, error) {
	prefix := "Unexpected error"
	if league.IsValidation(err) || league.IsNotFound(err) {
		prefix = "Error"
	}
	return plainMessage(fmt.Sprintf("%s: %s", prefix, err.Error())), nil
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

func plainMessage(text string) slack.Message {
	return slack.NewBlockMessage(slack.NewSectionBlock(plainText(text), nil, nil))
}

// sideLabel is the team name players use in the channel.
func sideLabel(side league.Side) string {
	switch side {
	case league.SideWhite:
		return "Blanco"
	case league.SideBlack:
		return "Negro"
	}
	return "Draw"
}

// displayDay renders a stored YYYY-MM-DD date as DD/MM/YYYY.
func displayDay(date string) string {
	d, err := time.Parse(league.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(displayDate)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// formatIngestResult creates the confirmation reply for a scoreboard report.
func (s *Notifier) formatIngestResult(res *league.IngestResult) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "Match created!"
	if res.DryRun {
		title = "Match preview"
	}
	blocks = append(blocks, slack.NewHeaderBlock(plainText(title)))

	location := res.Match.LocationName
	if typed := res.Extracted.Location; typed != "" && !strings.EqualFold(typed, location) {
		location = fmt.Sprintf("%s (typed '%s')", location, typed)
	}
	details := []string{
		fmt.Sprintf("Date: %s", res.Match.Date.Format(displayDate)),
		fmt.Sprintf("Location: %s", location),
	}
	if res.Extracted.WinnerLabel != nil {
		details = append(details, fmt.Sprintf("Winner: %s", *res.Extracted.WinnerLabel))
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText(strings.Join(details, "\n")), nil, nil))

	teams := fmt.Sprintf("Blanco: %s\nNegro: %s", strings.Join(res.Extracted.WhiteTeamNames, ", "), strings.Join(res.Extracted.BlackTeamNames, ", "))
	blocks = append(blocks, slack.NewSectionBlock(plainText(teams), nil, nil))

	if len(res.CreatedPlayers) > 0 {
		created := fmt.Sprintf(newPlayersLine, strings.Join(res.CreatedPlayers, ", "))
		blocks = append(blocks, slack.NewSectionBlock(plainText(created), nil, nil))
	}

	var notes []slack.MixedElement
	if label := res.Extracted.WinnerLabel; res.UnrecognizedWinnerLabel && label != nil {
		notes = append(notes, plainText(fmt.Sprintf(unknownWinner, *label)))
	}
	if res.DryRun {
		notes = append(notes, plainText(dryRunNotice))
	}
	if len(notes) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", notes...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchAnnouncement creates the channel post for a newly recorded match.
func (s *Notifier) formatMatchAnnouncement(event league.MatchRecorded) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText("🤾 New match recorded! 🤾")))

	details := fmt.Sprintf("%s at %s", displayDay(event.Date), event.LocationName)
	blocks = append(blocks, slack.NewSectionBlock(plainText(details), nil, nil))

	result := "Result: Draw"
	if event.Winner != "" {
		result = fmt.Sprintf("Result: %s won! 🏆", sideLabel(event.Winner))
	}
	fields := []*slack.TextBlockObject{
		plainText("Blanco\n" + bulletList(event.WhiteNames)),
		plainText("Negro\n" + bulletList(event.BlackNames)),
	}
	blocks = append(blocks, slack.NewSectionBlock(plainText(result), fields, nil))

	if len(event.CreatedPlayers) > 0 {
		welcome := fmt.Sprintf("👋 Welcome %s!", strings.Join(event.CreatedPlayers, ", "))
		blocks = append(blocks, slack.NewContextBlock("", plainText(welcome)))
	}

	return slack.NewBlockMessage(blocks...)
}

func bulletList(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "• " + n
	}
	return strings.Join(lines, "\n")
}

// formatLeaderboard creates a Slack message to display the four leaderboard lists.
func (s *Notifier) formatLeaderboard(lb *stats.Leaderboard) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText("🏆 Leaderboard 🏆")))

	if lb == nil || len(lb.MostGames) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText(noMatchesYet), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	rankings := func(title, unit string, rows []stats.PlayerRanking) slack.Block {
		lines := []string{fmt.Sprintf("*%s*", title)}
		for i, r := range rows {
			lines = append(lines, fmt.Sprintf("%d. %s %s: %d %s (%.1f%%)", i+1, medal(i+1), r.PlayerName, r.Value, unit, r.WinRate))
		}
		return slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil)
	}
	blocks = append(blocks,
		rankings("Most games", "games", lb.MostGames),
		rankings("Most wins", "wins", lb.MostWins),
	)

	if len(lb.BestWinRate) > 0 {
		lines := []string{"*Best win rate* (min. 3 games)"}
		for i, r := range lb.BestWinRate {
			lines = append(lines, fmt.Sprintf("%d. %s %s: %.1f%% in %d games", i+1, medal(i+1), r.PlayerName, r.WinRate, r.Value))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	if len(lb.CurrentStreaks) > 0 {
		lines := []string{"*Current streaks*"}
		for _, st := range lb.CurrentStreaks {
			icon := "🔥"
			if st.StreakType == "L" {
				icon = "🥶"
			}
			lines = append(lines, fmt.Sprintf("%s %s: %d%s", icon, st.PlayerName, st.StreakCount, st.StreakType))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchStats creates a Slack message with the pair, month and venue breakdowns.
func (s *Notifier) formatMatchStats(ms *stats.MatchStats) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText("📊 Match Stats 📊")))

	if ms == nil || len(ms.GamesOverTime) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText(noMatchesYet), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	if len(ms.TopPairs) > 0 {
		lines := []string{"*Top pairs* (min. 2 games together)"}
		for i, p := range ms.TopPairs {
			lines = append(lines, fmt.Sprintf("%d. %s & %s: %d/%d (%.1f%%)", i+1, p.Player1Name, p.Player2Name, p.Wins, p.GamesPlayed, p.WinRate))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	months := []string{"*Games per month*"}
	for _, m := range ms.GamesOverTime {
		months = append(months, fmt.Sprintf("%s: %d", m.Month, m.GamesCount))
	}
	venues := []string{"*Games per location*"}
	for _, l := range ms.LocationBreakdown {
		venues = append(venues, fmt.Sprintf("%s: %d", l.LocationName, l.GamesCount))
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, []*slack.TextBlockObject{
		markdown(strings.Join(months, "\n")),
		markdown(strings.Join(venues, "\n")),
	}, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(ps *stats.PlayerStats, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", ps.PlayerName)
	blocks = append(blocks, slack.NewHeaderBlock(plainText(headerText)))

	summary := fmt.Sprintf("> *Games*: %d\n> *Record*: %dW %dL %dD\n> *Win %%*: %.1f%%",
		ps.TotalGames,
		ps.Wins,
		ps.Losses,
		ps.Draws,
		ps.WinRate,
	)
	blocks = append(blocks, slack.NewSectionBlock(markdown(summary), nil, nil))

	if len(ps.TopTeammates) > 0 {
		lines := []string{"*Most frequent teammates*"}
		for _, tm := range ps.TopTeammates {
			lines = append(lines, fmt.Sprintf("• %s (%d)", tm.PlayerName, tm.GamesPlayedTogether))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	if len(ps.RecentMatches) > 0 {
		lines := []string{"*Recent matches*"}
		for i, m := range ps.RecentMatches {
			if i == recentMatches {
				break
			}
			lines = append(lines, fmt.Sprintf("• %s %s (%s): %s vs %s",
				displayDay(m.Date), m.LocationName, sideLabel(m.TeamColor), m.Result, strings.Join(m.OpponentNames, ", ")))
		}
		blocks = append(blocks, slack.NewSectionBlock(markdown(strings.Join(lines, "\n")), nil, nil))
	}

	if !strings.EqualFold(query, ps.PlayerName) && query != "" {
		blocks = append(blocks, slack.NewContextBlock("", plainText(fmt.Sprintf("Showing the closest match for '%s'.", query))))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(markdown(text), nil, nil),
	)
}
