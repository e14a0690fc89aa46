package processor

import (
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/pubsub"
	"github.com/handballito/handballito-time/internal/resolver"
)

// Processor turns scoreboard reports into recorded matches and fans the
// result out to the channel.
type Processor struct {
	store    league.Store
	resolver *resolver.Resolver
	pubsub   pubsub.PubSubClient
	notifier Notifier
	stats    LeaderboardSource
	metrics  metrics.Metrics
	newID    func() string
}

// Failure reasons reported to metrics.
const (
	reasonValidation = "validation"
	reasonNotFound   = "not_found"
	reasonInternal   = "internal"
)
