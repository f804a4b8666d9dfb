package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BulletCatalyst/internal/domain/models"
)

var testNeutrals = map[string]int{"openai": 50, "xai": 48, "groq": 48}

func TestMergeIndependentTracks(t *testing.T) {
	merged := Merge([]string{"NVDA"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "NVDA", Sentiment: 80, Catalysts: []string{"earnings beat"}},
		}},
		{Provider: "xai", OK: true, Results: []models.Assessment{
			{Ticker: "NVDA", Sentiment: 60},
		}},
	}, testNeutrals)

	require.Len(t, merged, 1)
	require.Len(t, merged[0].Tracks, 2)
	// 80 + (+5 for "beat") * 0.1
	assert.InDelta(t, 80.5, merged[0].Tracks["openai"].Score, 1e-9)
	assert.InDelta(t, 60.0, merged[0].Tracks["xai"].Score, 1e-9)
}

func TestMergeNeutralFillsSkippedTicker(t *testing.T) {
	merged := Merge([]string{"AAA", "BBB"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "AAA", Sentiment: 30},
		}},
		{Provider: "xai", OK: true, Results: []models.Assessment{
			{Ticker: "AAA", Sentiment: 30}, {Ticker: "BBB", Sentiment: 70},
		}},
	}, testNeutrals)

	require.Len(t, merged, 2)
	// BBB was skipped by openai but stays in its track at neutral.
	assert.Equal(t, 50, merged[1].Tracks["openai"].Sentiment)
	assert.InDelta(t, 50.0, merged[1].Tracks["openai"].Score, 1e-9)
	assert.InDelta(t, 70.0, merged[1].Tracks["xai"].Score, 1e-9)
}

func TestMergeNeutralSubstitutionUnsetSentiment(t *testing.T) {
	merged := Merge([]string{"AMD"}, []models.ProviderResult{
		{Provider: "xai", OK: true, Results: []models.Assessment{
			{Ticker: "AMD", Sentiment: models.SentimentUnset},
		}},
	}, testNeutrals)

	require.Len(t, merged, 1)
	assert.Equal(t, 48, merged[0].Tracks["xai"].Sentiment)
	assert.InDelta(t, 48.0, merged[0].Tracks["xai"].Score, 1e-9)
}

func TestMergeClampScore(t *testing.T) {
	merged := Merge([]string{"GOOD", "BAD"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "GOOD", Sentiment: 100, Catalysts: []string{"upgrade"}},
			{Ticker: "BAD", Sentiment: 0, Catalysts: []string{"lawsuit"}},
		}},
	}, testNeutrals)

	assert.Equal(t, 100.0, merged[0].Tracks["openai"].Score)
	assert.Equal(t, 0.0, merged[1].Tracks["openai"].Score)
}

func TestMergeClampSentiment(t *testing.T) {
	merged := Merge([]string{"HYPE", "SOUR"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "HYPE", Sentiment: 120, Catalysts: []string{"lawsuit"}},
			{Ticker: "SOUR", Sentiment: -40},
		}},
	}, testNeutrals)

	// Sentiment clamps before the bonus: 100 - 0.8, not min(120-0.8, 100).
	assert.Equal(t, 100, merged[0].Tracks["openai"].Sentiment)
	assert.InDelta(t, 99.2, merged[0].Tracks["openai"].Score, 1e-9)
	assert.Equal(t, 0, merged[1].Tracks["openai"].Sentiment)
}

func TestMergeSkipsFailedProviders(t *testing.T) {
	merged := Merge([]string{"TSLA"}, []models.ProviderResult{
		models.Failure("groq", models.ErrNoCredits, "out of credits"),
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "TSLA", Sentiment: 55},
		}},
	}, testNeutrals)

	require.Len(t, merged, 1)
	_, hasGroq := merged[0].Tracks["groq"]
	assert.False(t, hasGroq)
}

func TestMergeFollowsUniverseOrder(t *testing.T) {
	merged := Merge([]string{"AAA", "BBB", "CCC"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "CCC", Sentiment: 90}, {Ticker: "AAA", Sentiment: 10},
		}},
	}, testNeutrals)

	var got []string
	for _, m := range merged {
		got = append(got, m.Ticker)
	}
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, got)
}

func TestMergeDropsUnknownTickers(t *testing.T) {
	merged := Merge([]string{"NVDA"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "NVDA", Sentiment: 70}, {Ticker: "HALLU", Sentiment: 99},
		}},
	}, testNeutrals)

	require.Len(t, merged, 1)
	assert.Equal(t, "NVDA", merged[0].Ticker)
}

func TestRankTrack(t *testing.T) {
	merged := Merge([]string{"LOW", "HIGH", "MID"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "LOW", Sentiment: 30},
			{Ticker: "HIGH", Sentiment: 90},
			{Ticker: "MID", Sentiment: 60},
		}},
	}, testNeutrals)

	ranked := RankTrack(merged, "openai", 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "HIGH", ranked[0].Ticker)
	assert.Equal(t, "MID", ranked[1].Ticker)
}

func TestRankTrackStableTies(t *testing.T) {
	merged := Merge([]string{"AAA", "BBB", "CCC"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "AAA", Sentiment: 50},
			{Ticker: "BBB", Sentiment: 50},
			{Ticker: "CCC", Sentiment: 50},
		}},
	}, testNeutrals)

	ranked := RankTrack(merged, "openai", 0)
	var got []string
	for _, m := range ranked {
		got = append(got, m.Ticker)
	}
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, got)
}

func TestRankTrackRanksNeutralFill(t *testing.T) {
	merged := Merge([]string{"AAA", "BBB"}, []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{
			{Ticker: "AAA", Sentiment: 30},
		}},
		{Provider: "xai", OK: true, Results: []models.Assessment{
			{Ticker: "AAA", Sentiment: 30}, {Ticker: "BBB", Sentiment: 70},
		}},
	}, testNeutrals)

	ranked := RankTrack(merged, "openai", 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "BBB", ranked[0].Ticker)
	assert.InDelta(t, 50.0, ranked[0].Tracks["openai"].Score, 1e-9)
	assert.Equal(t, "AAA", ranked[1].Ticker)
}

func TestMergeIdempotentInput(t *testing.T) {
	order := []string{"NVDA"}
	in := []models.ProviderResult{
		{Provider: "openai", OK: true, Results: []models.Assessment{{Ticker: "NVDA", Sentiment: 80}}},
	}
	first := Merge(order, in, testNeutrals)
	second := Merge(order, in, testNeutrals)
	assert.Equal(t, first, second)
}
