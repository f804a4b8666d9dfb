package usecase

import (
	"sort"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/internal/services/heuristic"
)

// catalystWeight scales the summed catalyst bonus before it is folded
// into the track score.
const catalystWeight = 0.1

// Merge reconciles provider results over the full ticker universe:
// every ticker in order gets one record carrying a track for every
// successful provider, filled with the provider's neutral default when
// that provider skipped the ticker or omitted sentiment. Sentiment is
// clamped to [0,100] before the catalyst bonus is applied, and the
// final score is clamped again. Tickers a provider invented outside
// the universe are ignored.
func Merge(order []string, results []models.ProviderResult, neutrals map[string]int) []models.MergedResult {
	type track struct {
		name     string
		byTicker map[string]models.Assessment
	}

	tracks := make([]track, 0, len(results))
	for _, pr := range results {
		if !pr.OK {
			continue
		}
		byTicker := make(map[string]models.Assessment, len(pr.Results))
		for _, a := range pr.Results {
			byTicker[a.Ticker] = a
		}
		tracks = append(tracks, track{name: pr.Provider, byTicker: byTicker})
	}

	out := make([]models.MergedResult, 0, len(order))
	for _, ticker := range order {
		m := models.MergedResult{
			Ticker: ticker,
			Tracks: make(map[string]models.TrackScore, len(tracks)),
		}
		for _, tr := range tracks {
			neutral := neutrals[tr.name]
			sentiment := neutral
			var catalysts []string
			rationale := ""
			if a, ok := tr.byTicker[ticker]; ok {
				if a.Sentiment != models.SentimentUnset {
					sentiment = a.Sentiment
				}
				catalysts = a.Catalysts
				rationale = a.Rationale
			}
			sentiment = clampSentiment(sentiment)

			score := float64(sentiment) + heuristic.CatalystBonus(catalysts)*catalystWeight
			if score < 0 {
				score = 0
			}
			if score > 100 {
				score = 100
			}

			m.Tracks[tr.name] = models.TrackScore{
				Sentiment: sentiment,
				Score:     score,
				Catalysts: catalysts,
				Rationale: rationale,
			}
		}
		out = append(out, m)
	}
	return out
}

func clampSentiment(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// RankTrack selects one provider's top tickers, highest score first.
// The sort is stable, so equal scores keep their merge order.
func RankTrack(merged []models.MergedResult, provider string, topN int) []models.MergedResult {
	var tracked []models.MergedResult
	for _, m := range merged {
		if _, ok := m.Tracks[provider]; ok {
			tracked = append(tracked, m)
		}
	}

	sort.SliceStable(tracked, func(i, j int) bool {
		return tracked[i].Tracks[provider].Score > tracked[j].Tracks[provider].Score
	})

	if topN > 0 && len(tracked) > topN {
		tracked = tracked[:topN]
	}
	return tracked
}
