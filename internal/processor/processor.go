package processor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/pubsub"
	"github.com/handballito/handballito-time/internal/resolver"
	"github.com/handballito/handballito-time/internal/scoreboard"
)

// errDryRun aborts the ingestion transaction once the result is known.
var errDryRun = errors.New("dry run")

// New creates a new Processor.
func New(store league.Store, notifier Notifier, stats LeaderboardSource, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		resolver: resolver.New(),
		pubsub:   pubsub,
		notifier: notifier,
		stats:    stats,
		metrics:  metrics,
		newID:    uuid.NewString,
	}
}

// IngestReport parses a scoreboard report and records it as a match.
// Resolution, player creation and match persistence share one transaction,
// so a failure at any step leaves the store untouched. With dryRun the
// transaction is rolled back after the match has been built and the
// would-be result is returned.
func (p *Processor) IngestReport(ctx context.Context, raw string, dryRun bool) (*league.IngestResult, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveIngestDuration(time.Since(start).Seconds())
	}()

	data, err := scoreboard.Parse(raw)
	if err != nil {
		p.failed(err)
		return nil, err
	}
	log.Debug("Parsed scoreboard report", "date", data.Date, "location", data.Location, "white", data.WhiteTeamNames, "black", data.BlackTeamNames)

	var (
		result  *league.IngestResult
		created []league.Player
	)
	err = p.store.WithTx(ctx, func(tx league.Tx) error {
		players, err := tx.ListPlayers(ctx)
		if err != nil {
			return errors.Wrap(err, "list players")
		}
		locations, err := tx.ListLocations(ctx)
		if err != nil {
			return errors.Wrap(err, "list locations")
		}

		res, err := p.resolver.Resolve(data, players, locations)
		if err != nil {
			return err
		}
		match, err := BuildMatch(res, data.WinnerLabel, p.newID)
		if err != nil {
			return err
		}

		for _, pl := range res.Created {
			if err := tx.InsertPlayer(ctx, pl); err != nil {
				return err
			}
		}
		if err := tx.InsertMatch(ctx, match); err != nil {
			return err
		}

		created = res.Created
		result = newIngestResult(data, match, res.Created, dryRun)
		if dryRun {
			return errDryRun
		}
		return nil
	})
	if errors.Is(err, errDryRun) {
		log.Info("[Dry Run] Match not recorded", "date", data.Date, "location", result.Match.LocationName, "new_players", result.CreatedPlayers)
		return result, nil
	}
	if err != nil {
		p.failed(err)
		return nil, err
	}

	if result.UnrecognizedWinnerLabel {
		log.Warn("Winner label not recognized, match recorded as a draw", "matchID", result.Match.ID, "label", *data.WinnerLabel)
	}
	p.metrics.IncReportsIngested()
	p.metrics.AddPlayersCreated(len(created))
	log.Info("Match recorded", "matchID", result.Match.ID, "date", data.Date, "location", result.Match.LocationName, "new_players", result.CreatedPlayers)

	p.publish(ctx, result, created)
	return result, nil
}

func newIngestResult(data league.ExtractedMatchData, match league.Match, created []league.Player, dryRun bool) *league.IngestResult {
	_, _, unrecognized := WinnerSide(data.WinnerLabel)
	names := make([]string, len(created))
	for i, pl := range created {
		names[i] = pl.Name
	}
	return &league.IngestResult{
		Match:                   match,
		Extracted:               data,
		UnrecognizedWinnerLabel: unrecognized,
		CreatedPlayers:          names,
		DryRun:                  dryRun,
	}
}

func (p *Processor) failed(err error) {
	reason := reasonInternal
	switch {
	case league.IsValidation(err):
		reason = reasonValidation
	case league.IsNotFound(err):
		reason = reasonNotFound
	}
	p.metrics.IncIngestFailed(reason)
	if reason == reasonInternal {
		log.Error("Failed to ingest scoreboard report", "error", err)
		return
	}
	log.Warn("Rejected scoreboard report", "reason", reason, "error", err)
}

// publish emits the match-recorded event. The match is already committed, so
// a publishing failure is only logged.
func (p *Processor) publish(ctx context.Context, result *league.IngestResult, created []league.Player) {
	event, err := p.matchRecorded(ctx, result.Match, created)
	if err != nil {
		log.Error("Failed to build match event", "error", err, "matchID", result.Match.ID)
		return
	}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventMatchRecorded, event); err != nil {
		log.Error("Failed to publish match event", "error", err, "matchID", result.Match.ID)
	}
}

// matchRecorded describes m with the canonical roster names of its players.
func (p *Processor) matchRecorded(ctx context.Context, m league.Match, created []league.Player) (league.MatchRecorded, error) {
	players, err := p.store.ListPlayers(ctx)
	if err != nil {
		return league.MatchRecorded{}, errors.Wrap(err, "list players")
	}
	names := make(map[string]string, len(players))
	for _, pl := range players {
		names[pl.ID] = pl.Name
	}
	lookup := func(ids []string) []string {
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = names[id]
		}
		return out
	}

	event := league.MatchRecorded{
		MatchID:        m.ID,
		Date:           m.Date.Format(league.DateLayout),
		LocationName:   m.LocationName,
		WhiteNames:     lookup(m.White.PlayerIDs),
		BlackNames:     lookup(m.Black.PlayerIDs),
		CreatedPlayers: make([]string, 0, len(created)),
	}
	if side, ok := m.WinnerSide(); ok {
		event.Winner = side
	}
	for _, pl := range created {
		event.CreatedPlayers = append(event.CreatedPlayers, pl.Name)
	}
	return event, nil
}

// AnnounceMatch posts a recorded match to the channel, followed by the
// updated leaderboard.
func (p *Processor) AnnounceMatch(ctx context.Context, event league.MatchRecorded, dryRun bool) error {
	log.Info("Announcing match", "matchID", event.MatchID)
	if err := p.notifier.SendMatchAnnouncement(ctx, event, dryRun); err != nil {
		return errors.Wrap(err, "announce match")
	}

	lb, err := p.stats.Leaderboard(ctx)
	if err != nil {
		return errors.Wrap(err, "compute leaderboard")
	}
	if err := p.notifier.SendLeaderboard(ctx, lb, dryRun); err != nil {
		return errors.Wrap(err, "send leaderboard")
	}
	return nil
}
