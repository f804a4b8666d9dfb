package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"BulletCatalyst/internal/domain/models"
)

func TestBuildSections(t *testing.T) {
	g := models.NewGrouping([]models.NewsDocument{
		{Title: "Nvidia beats estimates", Snippet: "Data center revenue doubles", Tickers: []string{"NVDA"}},
		{Title: "AMD launches new chip", Tickers: []string{"AMD"}},
	})

	out := Build(g, 0)

	assert.Contains(t, out, "=== NVDA ===\n• Nvidia beats estimates — Data center revenue doubles\n")
	assert.Contains(t, out, "=== AMD ===\n• AMD launches new chip\n")
	assert.True(t, strings.Index(out, "=== NVDA ===") < strings.Index(out, "=== AMD ==="))
}

func TestBuildNoNewsPlaceholder(t *testing.T) {
	g := &models.Grouping{
		Order: []string{"TSLA"},
		Docs:  map[string][]models.NewsDocument{"TSLA": nil},
	}

	out := Build(g, 0)
	assert.Contains(t, out, "=== TSLA ===\n(no news)\n")
}

func TestBuildTruncates(t *testing.T) {
	docs := make([]models.NewsDocument, 0, 200)
	for i := 0; i < 200; i++ {
		docs = append(docs, models.NewsDocument{
			Title:   strings.Repeat("x", 120),
			Tickers: []string{"NVDA"},
		})
	}

	out := Build(models.NewGrouping(docs), 500)
	assert.LessOrEqual(t, len(out), 500)
}

func TestBuildCollapsesWhitespace(t *testing.T) {
	g := models.NewGrouping([]models.NewsDocument{
		{Title: "Oracle\n  signs   cloud deal", Tickers: []string{"ORCL"}},
	})

	out := Build(g, 0)
	assert.Contains(t, out, "• Oracle signs cloud deal\n")
}
