package di

import (
	"fmt"
	"time"

	"BulletCatalyst/internal/domain/repository"
	"BulletCatalyst/internal/domain/service"
	"BulletCatalyst/internal/handler/api"
	"BulletCatalyst/internal/report"
	"BulletCatalyst/internal/service/cache"
	"BulletCatalyst/internal/service/feed"
	"BulletCatalyst/internal/service/ratelimit"
	"BulletCatalyst/internal/services/heuristic"
	"BulletCatalyst/internal/services/screen"
	"BulletCatalyst/internal/usecase"
	"BulletCatalyst/pkg/config"
	applogger "BulletCatalyst/pkg/logger"
	"BulletCatalyst/pkg/metrics"
	"BulletCatalyst/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideEventsHandler creates the websocket event hub. It serves the
// /ws/events route and doubles as the pipeline's event sink.
func ProvideEventsHandler(l *applogger.Logger) *api.EventsHandler {
	return api.NewEventsHandler(l)
}

// ProvideFeedSource creates the RSS feed client.
func ProvideFeedSource(cfg *config.Config, l *applogger.Logger) repository.FeedSource {
	return feed.NewClient(cfg.Feeds.URLs, l,
		feed.WithTimeout(cfg.Feeds.Timeout),
		feed.WithDelay(cfg.Feeds.Delay),
		feed.WithUserAgent(cfg.Feeds.UserAgent),
		feed.WithMaxPerFeed(cfg.Feeds.MaxPerFeed),
	)
}

// ProvideScreeners creates the provider clients in query order.
func ProvideScreeners(cfg *config.Config, l *applogger.Logger) []service.Screener {
	raw := cfg.Debug.LogRawPayloads
	return []service.Screener{
		screen.NewOpenAI(cfg.Screen.OpenAI, l, raw),
		screen.NewXAI(cfg.Screen.XAI, l, raw),
		screen.NewGroq(cfg.Screen.Groq, l, raw),
	}
}

// ProvideScorer creates the keyword heuristic scorer.
func ProvideScorer() service.HeuristicScorer {
	return heuristic.NewScorer()
}

// ProvideRunner creates the pipeline runner.
func ProvideRunner(
	feeds repository.FeedSource,
	screeners []service.Screener,
	scorer service.HeuristicScorer,
	m repository.Metrics,
	events *api.EventsHandler,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Runner {
	return usecase.NewRunner(feeds, screeners, scorer, m, events, l, usecase.Options{
		CorpusMaxChars:    cfg.Screen.CorpusMaxChars,
		TopN:              cfg.Screen.TopN,
		HeuristicFallback: cfg.Screen.HeuristicFallback,
	})
}

// ProvideSnapshot creates the served-report store.
func ProvideSnapshot(cfg *config.Config) *cache.Snapshot {
	return cache.NewSnapshot(cfg.Report.StaleAfter)
}

// ProvideRenderer creates the markdown renderer.
func ProvideRenderer(cfg *config.Config) *report.Renderer {
	return report.NewRenderer(cfg.Report.MaxBullets)
}

// ProvideLimiter throttles the manual run trigger.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New(4, time.Minute)
}

// ProvideReportHandler creates the report API handler.
func ProvideReportHandler(
	snapshot *cache.Snapshot,
	runner *usecase.Runner,
	limiter *ratelimit.Limiter,
	renderer *report.Renderer,
	l *applogger.Logger,
) *api.ReportHandler {
	return api.NewReportHandler(snapshot, runner, limiter, renderer, l)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	runner *usecase.Runner,
	screeners []service.Screener,
	snapshot *cache.Snapshot,
	renderer *report.Renderer,
	reports *api.ReportHandler,
	events *api.EventsHandler,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, runner, screeners, snapshot, renderer, reports, events, l)
}
