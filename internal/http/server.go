package http

import (
	"net/http"

	"github.com/handballito/handballito-time/internal/config"
	"github.com/handballito/handballito-time/internal/http/handlers"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/notifier"
	"github.com/handballito/handballito-time/internal/processor"
	"github.com/handballito/handballito-time/internal/pubsub"
	"github.com/handballito/handballito-time/internal/stats"
)

func NewServer(store league.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.CounterStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, stats *stats.Service, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Stats:          stats,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slack := slackVerifier(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(handlers.ClearStoreHandler(s.Store), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(handlers.AddPlayerHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(handlers.GetPlayerHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/stats", Chain(handlers.PlayerStatsHandler(s.Stats), paramsMiddleware))

	s.Router.Handle("GET /locations", Chain(handlers.ListLocationsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /locations", Chain(handlers.AddLocationHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /locations/{id}", Chain(handlers.GetLocationHandler(s.Store), paramsMiddleware))
	s.Router.Handle("PUT /locations/{id}", Chain(handlers.UpdateLocationHandler(s.Store), paramsMiddleware))

	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(handlers.AddMatchHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Store), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}", Chain(handlers.UpdateMatchHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /matches/from-text", Chain(handlers.IngestTextHandler(s.Processor), paramsMiddleware))

	s.Router.Handle("GET /stats/leaderboard", Chain(handlers.LeaderboardHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("GET /stats/matches", Chain(handlers.MatchStatsHandler(s.Stats), paramsMiddleware))
	s.Router.Handle("GET /stats/counters", Chain(handlers.CountersHandler(s.Counters), paramsMiddleware))

	s.Router.Handle("POST /slack/command/match", Chain(handlers.MatchCommandHandler(s.Processor, s.Notifier), paramsMiddleware, slack))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Stats, s.Notifier), paramsMiddleware, slack))
	s.Router.Handle("POST /slack/command/match-stats", Chain(handlers.MatchStatsCommandHandler(s.Stats, s.Notifier), paramsMiddleware, slack))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Stats, s.Notifier), paramsMiddleware, slack))

	s.Router.Handle("POST /pubsub/match-recorded", Chain(handlers.MatchRecordedHandler(s.Processor, s.pubsub), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
