package http

import (
	"net/http"

	"github.com/handballito/handballito-time/internal/config"
	"github.com/handballito/handballito-time/internal/league"
	"github.com/handballito/handballito-time/internal/metrics"
	"github.com/handballito/handballito-time/internal/notifier"
	"github.com/handballito/handballito-time/internal/processor"
	"github.com/handballito/handballito-time/internal/pubsub"
	"github.com/handballito/handballito-time/internal/stats"
)

type Server struct {
	Store          league.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.CounterStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Stats          *stats.Service
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
