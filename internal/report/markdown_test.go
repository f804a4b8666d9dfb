package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"BulletCatalyst/internal/domain/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		GeneratedAt: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
		Status: []models.ProviderStatus{
			{Provider: "openai", Label: "GPT", State: "OK", Count: 2},
			{Provider: "groq", Label: "Groq", State: "NO_CREDITS"},
		},
		Advisories: []string{"Groq track substituted with keyword heuristic (no credits)"},
		Documents:  5,
		Tickers:    2,
		Tracks: []models.RankedTrack{
			{
				Provider: "openai",
				Label:    "GPT",
				Results: []models.MergedResult{
					{Ticker: "NVDA", Tracks: map[string]models.TrackScore{
						"openai": {Sentiment: 85, Score: 85.5, Catalysts: []string{"earnings beat"}, Rationale: "strong quarter"},
					}},
					{Ticker: "AMD", Tracks: map[string]models.TrackScore{
						"openai": {Sentiment: 60, Score: 60},
					}},
				},
			},
		},
		News: map[string][]models.NewsDocument{
			"NVDA": {
				{Title: "Nvidia beats estimates - CNBC", Source: "cnbc.com"},
				{Title: "Nvidia Beats Estimates - Reuters", Source: "reuters.com"},
				{Title: "Data center demand accelerates", Source: "cnn.com"},
			},
		},
	}
}

func TestMarkdownHeader(t *testing.T) {
	out := NewRenderer(6).Markdown(sampleReport())

	assert.Contains(t, out, "# Bullet Catalyst Report")
	assert.Contains(t, out, "**Status:** GPT: OK (2) | Groq: NO_CREDITS")
	assert.Contains(t, out, "> ⚠ Groq track substituted with keyword heuristic (no credits)")
	assert.Contains(t, out, "Scanned 5 documents, 2 tickers.")
}

func TestMarkdownRankedSection(t *testing.T) {
	out := NewRenderer(6).Markdown(sampleReport())

	assert.Contains(t, out, "## GPT Top 2")
	assert.Contains(t, out, "### 1. NVDA — 85.5")
	assert.Contains(t, out, "### 2. AMD — 60.0")
	assert.Contains(t, out, "Catalysts: earnings beat")
	assert.Contains(t, out, "strong quarter")
	assert.Contains(t, out, "| GPT | NVDA, AMD |")
}

func TestMarkdownBulletsDedupe(t *testing.T) {
	out := NewRenderer(6).Markdown(sampleReport())

	// Publisher suffix trimmed, case-insensitive duplicate dropped.
	assert.Contains(t, out, "• Nvidia beats estimates - cnbc.com")
	assert.NotContains(t, out, "reuters.com")
	assert.Contains(t, out, "• Data center demand accelerates - cnn.com")
}

func TestMarkdownBulletCap(t *testing.T) {
	rep := sampleReport()
	rep.News["NVDA"] = nil
	for i := 0; i < 10; i++ {
		rep.News["NVDA"] = append(rep.News["NVDA"], models.NewsDocument{
			Title:  strings.Repeat("x", i+1),
			Source: "example.com",
		})
	}

	out := NewRenderer(3).Markdown(rep)
	assert.Equal(t, 3, strings.Count(out, "• x"))
}
