package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/domain/repository"
	"BulletCatalyst/internal/domain/service"
	"BulletCatalyst/pkg/logger"
)

type stubFeed struct {
	docs []models.NewsDocument
	err  error
}

func (f *stubFeed) Fetch(ctx context.Context) ([]models.NewsDocument, error) {
	return f.docs, f.err
}

type stubScreener struct {
	name    string
	label   string
	neutral int
	result  models.ProviderResult
}

func (s *stubScreener) Name() string  { return s.name }
func (s *stubScreener) Label() string { return s.label }
func (s *stubScreener) Neutral() int  { return s.neutral }
func (s *stubScreener) Evaluate(ctx context.Context, corpus string) models.ProviderResult {
	return s.result
}

type stubScorer struct{}

func (stubScorer) Score(g *models.Grouping) []models.Assessment {
	out := make([]models.Assessment, 0, len(g.Order))
	for _, t := range g.Order {
		out = append(out, models.Assessment{Ticker: t, Sentiment: 50})
	}
	return out
}

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(provider, outcome string) {}
func (nopMetrics) RecordParseFailure(provider string)             {}
func (nopMetrics) RecordRunDuration(seconds float64)              {}
func (nopMetrics) RecordIngest(documents, tickers int)            {}

type captureEvents struct{ events []repository.RunEvent }

func (c *captureEvents) Publish(e repository.RunEvent) { c.events = append(c.events, e) }

func testDocs() []models.NewsDocument {
	return []models.NewsDocument{
		{Title: "Nvidia beats estimates", URL: "https://example.com/a", Source: "example.com"},
		{Title: "$AMD wins big contract", URL: "https://example.com/b", Source: "example.com"},
	}
}

func newTestRunner(feed *stubFeed, screeners []*stubScreener, events repository.EventSink, fallback bool) *Runner {
	list := make([]service.Screener, 0, len(screeners))
	for _, s := range screeners {
		list = append(list, s)
	}
	return NewRunner(feed, list, stubScorer{}, nopMetrics{}, events, logger.Nop(), Options{
		TopN:              10,
		HeuristicFallback: fallback,
	})
}

func TestRunHappyPath(t *testing.T) {
	openai := &stubScreener{name: "openai", label: "GPT", neutral: 50, result: models.ProviderResult{
		Provider: "openai", OK: true,
		Results: []models.Assessment{{Ticker: "NVDA", Sentiment: 80}, {Ticker: "AMD", Sentiment: 65}},
	}}
	events := &captureEvents{}
	r := newTestRunner(&stubFeed{docs: testDocs()}, []*stubScreener{openai}, events, false)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 2, report.Tickers)
	require.Len(t, report.Tracks, 1)
	assert.Equal(t, "GPT", report.Tracks[0].Label)
	assert.Equal(t, "NVDA", report.Tracks[0].Results[0].Ticker)
	assert.Equal(t, "GPT: OK (2)", report.StatusLine())

	var types []string
	for _, e := range events.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"run_started", "provider_done", "run_finished"}, types)
}

func TestRunHeuristicSubstitution(t *testing.T) {
	openai := &stubScreener{name: "openai", label: "GPT", neutral: 50, result: models.ProviderResult{
		Provider: "openai", OK: true,
		Results: []models.Assessment{{Ticker: "NVDA", Sentiment: 80}},
	}}
	groq := &stubScreener{name: "groq", label: "Groq", neutral: 48,
		result: models.Failure("groq", models.ErrNoCredits, "credits exhausted")}

	r := newTestRunner(&stubFeed{docs: testDocs()}, []*stubScreener{openai, groq}, &captureEvents{}, true)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Tracks, 2)
	assert.Equal(t, "Groq", report.Tracks[1].Label)
	require.Len(t, report.Advisories, 1)
	assert.Contains(t, report.Advisories[0], "no credits")
	assert.Contains(t, report.StatusLine(), "Groq: NO_CREDITS")
}

func TestRunAllProvidersDownNoFallback(t *testing.T) {
	groq := &stubScreener{name: "groq", label: "Groq", neutral: 48,
		result: models.Failure("groq", models.ErrTimeout, "deadline")}
	r := newTestRunner(&stubFeed{docs: testDocs()}, []*stubScreener{groq}, &captureEvents{}, false)

	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "check api keys")
}

func TestRunFeedFailure(t *testing.T) {
	r := newTestRunner(&stubFeed{err: errors.New("network down")}, nil, &captureEvents{}, false)
	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "fetch feeds")
}

func TestRunNoTickers(t *testing.T) {
	docs := []models.NewsDocument{{Title: "quiet day on wall street"}}
	r := newTestRunner(&stubFeed{docs: docs}, nil, &captureEvents{}, false)
	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "no tickers")
}

func TestDryRun(t *testing.T) {
	r := newTestRunner(&stubFeed{docs: testDocs()}, nil, &captureEvents{}, false)
	text, err := r.DryRun(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "=== NVDA ===")
	assert.Contains(t, text, "=== AMD ===")
}
