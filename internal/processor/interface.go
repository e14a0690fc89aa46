package processor

import (
	"context"

	"github.com/handballito/handballito-time/internal/notifier"
	"github.com/handballito/handballito-time/internal/stats"
)

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}

// LeaderboardSource supplies the standings posted after a match announcement.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context) (*stats.Leaderboard, error)
}
