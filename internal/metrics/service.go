package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ReportsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handballito_reports_ingested_total",
			Help: "The total number of scoreboard reports recorded as matches.",
		}),
		IngestFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "handballito_ingest_failed_total",
			Help: "The total number of scoreboard reports that could not be recorded.",
		}, []string{"reason"}),
		PlayersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handballito_players_created_total",
			Help: "The total number of players created implicitly during ingestion.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "handballito_ingest_duration_seconds",
			Help:    "The duration of a scoreboard ingestion.",
			Buckets: durationBuckets,
		}),
		StatsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "handballito_stats_duration_seconds",
			Help:    "The duration of a statistics query.",
			Buckets: durationBuckets,
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handballito_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handballito_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "handballito_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ReportsIngested,
		s.IngestFailed,
		s.PlayersCreated,
		s.IngestDuration,
		s.StatsDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncReportsIngested() {
	s.ReportsIngested.Inc()
}

func (s *Service) IncIngestFailed(reason string) {
	s.IngestFailed.WithLabelValues(reason).Inc()
}

func (s *Service) AddPlayersCreated(n int) {
	s.PlayersCreated.Add(float64(n))
}

func (s *Service) ObserveIngestDuration(duration float64) {
	s.IngestDuration.Observe(duration)
}

func (s *Service) ObserveStatsDuration(duration float64) {
	s.StatsDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
