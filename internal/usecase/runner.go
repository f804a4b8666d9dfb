// Package usecase contains the pipeline orchestration: one run takes
// feeds to a finished report.
package usecase

import (
	"context"
	"fmt"
	"time"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/domain/repository"
	"BulletCatalyst/internal/domain/service"
	"BulletCatalyst/internal/services/corpus"
	"BulletCatalyst/internal/services/tickers"
	"BulletCatalyst/pkg/logger"
)

// Options tune one pipeline run.
type Options struct {
	CorpusMaxChars    int
	TopN              int
	HeuristicFallback bool
}

// Runner executes the full pipeline: fetch, extract, group, screen,
// merge, rank. Providers are queried sequentially in registration
// order; a failed or empty provider degrades its own track only.
type Runner struct {
	feeds     repository.FeedSource
	screeners []service.Screener
	scorer    service.HeuristicScorer
	metrics   repository.Metrics
	events    repository.EventSink
	log       *logger.Logger
	opts      Options
}

func NewRunner(
	feeds repository.FeedSource,
	screeners []service.Screener,
	scorer service.HeuristicScorer,
	metrics repository.Metrics,
	events repository.EventSink,
	log *logger.Logger,
	opts Options,
) *Runner {
	return &Runner{
		feeds:     feeds,
		screeners: screeners,
		scorer:    scorer,
		metrics:   metrics,
		events:    events,
		log:       log,
		opts:      opts,
	}
}

// Run executes one full pipeline pass. The only fatal conditions are
// feed failure, an empty grouping, and every track coming up empty; any
// single provider outage degrades into an advisory instead.
func (r *Runner) Run(ctx context.Context) (*models.Report, error) {
	started := time.Now()
	r.events.Publish(repository.RunEvent{Type: "run_started"})

	grouping, docCount, err := r.ingest(ctx)
	if err != nil {
		r.events.Publish(repository.RunEvent{Type: "run_failed", Detail: err.Error()})
		return nil, err
	}

	text := corpus.Build(grouping, r.opts.CorpusMaxChars)
	r.log.Info("corpus built",
		logger.Int("tickers", len(grouping.Order)),
		logger.Int("chars", len(text)),
	)

	report := &models.Report{
		GeneratedAt: started,
		Documents:   docCount,
		Tickers:     len(grouping.Order),
		News:        grouping.Docs,
	}

	neutrals := make(map[string]int, len(r.screeners))
	results := make([]models.ProviderResult, 0, len(r.screeners))
	anyTrack := false

	for _, s := range r.screeners {
		neutrals[s.Name()] = s.Neutral()

		res := s.Evaluate(ctx, text)
		state := trackState(res)
		r.recordProvider(res, state)

		if len(res.Results) == 0 && r.opts.HeuristicFallback {
			res = r.substitute(s, grouping, res, report)
		}
		if len(res.Results) > 0 {
			anyTrack = true
		}

		results = append(results, res)
		report.Status = append(report.Status, models.ProviderStatus{
			Provider: s.Name(),
			Label:    s.Label(),
			State:    state,
			Count:    len(res.Results),
		})
		r.events.Publish(repository.RunEvent{Type: "provider_done", Provider: s.Name(), Detail: state})
	}

	if !anyTrack {
		err := fmt.Errorf("no provider produced results and heuristic fallback is off; check api keys, credit balances and model names")
		r.events.Publish(repository.RunEvent{Type: "run_failed", Detail: err.Error()})
		return nil, err
	}

	merged := Merge(grouping.Order, results, neutrals)
	for _, s := range r.screeners {
		ranked := RankTrack(merged, s.Name(), r.opts.TopN)
		if len(ranked) == 0 {
			continue
		}
		report.Tracks = append(report.Tracks, models.RankedTrack{
			Provider: s.Name(),
			Label:    s.Label(),
			Results:  ranked,
		})
	}

	r.metrics.RecordRunDuration(time.Since(started).Seconds())
	r.events.Publish(repository.RunEvent{Type: "run_finished", Detail: report.StatusLine()})
	r.log.Info("run finished",
		logger.String("status", report.StatusLine()),
		logger.Duration("took", time.Since(started)),
	)
	return report, nil
}

// DryRun builds and returns the prompt corpus without contacting any
// provider.
func (r *Runner) DryRun(ctx context.Context) (string, error) {
	grouping, _, err := r.ingest(ctx)
	if err != nil {
		return "", err
	}
	return corpus.Build(grouping, r.opts.CorpusMaxChars), nil
}

func (r *Runner) ingest(ctx context.Context) (*models.Grouping, int, error) {
	docs, err := r.feeds.Fetch(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch feeds: %w", err)
	}

	for i := range docs {
		if len(docs[i].Tickers) == 0 {
			docs[i].Tickers = tickers.Extract(docs[i].Title+" "+docs[i].Snippet, docs[i].URL)
		}
	}

	grouping := models.NewGrouping(docs)
	r.metrics.RecordIngest(len(docs), len(grouping.Order))
	if grouping.Empty() {
		return nil, 0, fmt.Errorf("no tickers discovered in %d documents", len(docs))
	}
	return grouping, len(docs), nil
}

// substitute backs an empty provider track with heuristic scores and
// records an advisory naming the reason.
func (r *Runner) substitute(s service.Screener, g *models.Grouping, failed models.ProviderResult, report *models.Report) models.ProviderResult {
	report.Advisories = append(report.Advisories,
		fmt.Sprintf("%s track substituted with keyword heuristic (%s)", s.Label(), trackReason(failed)))
	r.log.Warn("provider track degraded to heuristic",
		logger.String("provider", s.Name()),
		logger.String("kind", string(failed.ErrKind)),
		logger.String("detail", failed.ErrMsg),
	)
	return models.ProviderResult{
		Provider: s.Name(),
		Results:  r.scorer.Score(g),
		OK:       true,
	}
}

func (r *Runner) recordProvider(res models.ProviderResult, state string) {
	outcome := "ok"
	if !res.OK {
		outcome = string(res.ErrKind)
	}
	r.metrics.RecordProviderRequest(res.Provider, outcome)
	if res.ErrKind == models.ErrParseFailure {
		r.metrics.RecordParseFailure(res.Provider)
	}
}

func trackState(res models.ProviderResult) string {
	if res.OK {
		if len(res.Results) == 0 {
			return "EMPTY"
		}
		return "OK"
	}
	switch res.ErrKind {
	case models.ErrMissingKey:
		return "NO_KEY"
	case models.ErrUnauthorized:
		return "UNAUTHORIZED"
	case models.ErrNoCredits:
		return "NO_CREDITS"
	case models.ErrForbidden:
		return "FORBIDDEN"
	case models.ErrParseFailure:
		return "PARSE_FAILURE"
	case models.ErrTimeout:
		return "TIMEOUT"
	case models.ErrUnavailable:
		return "UNAVAILABLE"
	default:
		return "HTTP_ERROR"
	}
}

func trackReason(res models.ProviderResult) string {
	if res.OK {
		return "empty reply"
	}
	switch res.ErrKind {
	case models.ErrMissingKey:
		return "missing api key"
	case models.ErrUnauthorized:
		return "invalid credentials"
	case models.ErrNoCredits:
		return "no credits"
	case models.ErrForbidden:
		return "access forbidden"
	case models.ErrParseFailure:
		return "unparseable reply"
	case models.ErrTimeout:
		return "timeout"
	case models.ErrUnavailable:
		return "provider unavailable"
	default:
		return "http error"
	}
}
