package notifier

import (
	"context"

	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded matches
	SendMatchAnnouncement(ctx context.Context, event league.MatchRecorded, dryRun bool) error
	SendLeaderboard(ctx context.Context, lb *stats.Leaderboard, dryRun bool) error

	// For formatting responses for slash commands
	FormatIngestResponse(res *league.IngestResult) (any, error)
	FormatLeaderboardResponse(lb *stats.Leaderboard) (any, error)
	FormatMatchStatsResponse(ms *stats.MatchStats) (any, error)
	FormatPlayerStatsResponse(ps *stats.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
	FormatErrorResponse(err error) (any, error)
}
