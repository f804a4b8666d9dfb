// Package heuristic scores tickers from headline keywords alone. It is
// the offline substitute used when a screening provider returns nothing.
package heuristic

import (
	"strings"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/pkg/util"
)

const (
	baseline     = 50
	maxCatalysts = 6
)

type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Score produces one assessment per ticker in the grouping. Sentiment
// starts at the neutral baseline and shifts once per matching sentiment
// rule across the ticker's combined headline text. The first few
// distinct headlines double as the reported catalysts.
func (s *Scorer) Score(g *models.Grouping) []models.Assessment {
	out := make([]models.Assessment, 0, len(g.Order))
	for _, ticker := range g.Order {
		docs := g.Docs[ticker]

		var parts []string
		titles := make([]string, 0, len(docs))
		for _, d := range docs {
			parts = append(parts, d.Title, d.Snippet)
			if t := util.CleanSpaces(d.Title); t != "" {
				titles = append(titles, t)
			}
		}
		text := strings.ToLower(strings.Join(parts, " "))

		sentiment := baseline
		for _, r := range SentimentRules {
			if r.Pattern.MatchString(text) {
				sentiment += int(r.Weight)
			}
		}
		if sentiment < 0 {
			sentiment = 0
		}
		if sentiment > 100 {
			sentiment = 100
		}

		catalysts := util.UniqueFold(titles)
		if len(catalysts) > maxCatalysts {
			catalysts = catalysts[:maxCatalysts]
		}

		out = append(out, models.Assessment{
			Ticker:    ticker,
			Sentiment: sentiment,
			Catalysts: catalysts,
			Rationale: "keyword heuristic",
		})
	}
	return out
}
