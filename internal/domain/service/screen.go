package service

import (
	"context"

	"BulletCatalyst/internal/domain/models"
)

// Screener evaluates a prompt corpus against one LLM provider and
// returns a best-effort structured result. Failures are reported as
// data on the result, never as an error.
type Screener interface {
	// Name is the stable provider identifier ("openai", "xai", "groq").
	Name() string
	// Label is the display name used in reports ("GPT", "Grok", "Groq").
	Label() string
	// Neutral is the sentiment substituted for tickers the provider did
	// not score (50 for the primary track, 48 for secondary tracks).
	Neutral() int
	Evaluate(ctx context.Context, corpus string) models.ProviderResult
}

// HeuristicScorer computes assessments from news text alone. It has no
// network dependency and never fails; it backs any provider track that
// returned nothing.
type HeuristicScorer interface {
	Score(grouping *models.Grouping) []models.Assessment
}
