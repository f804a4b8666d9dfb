// Package corpus renders grouped news into the plain-text block format
// the screening providers are prompted with.
package corpus

import (
	"strings"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/pkg/util"
)

const DefaultMaxChars = 16000

// Build renders one section per ticker, each headed by the symbol and
// followed by one bullet per document. Tickers appear in discovery
// order. A ticker without documents gets a "(no news)" placeholder so
// the model still sees the symbol. The result is hard-truncated at
// maxChars bytes.
func Build(g *models.Grouping, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var b strings.Builder
	for _, ticker := range g.Order {
		b.WriteString("=== ")
		b.WriteString(ticker)
		b.WriteString(" ===\n")

		docs := g.Docs[ticker]
		if len(docs) == 0 {
			b.WriteString("(no news)\n")
		}
		for _, d := range docs {
			b.WriteString("• ")
			b.WriteString(util.CleanSpaces(d.Title))
			if s := util.CleanSpaces(d.Snippet); s != "" {
				b.WriteString(" — ")
				b.WriteString(s)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return util.Truncate(b.String(), maxChars)
}
