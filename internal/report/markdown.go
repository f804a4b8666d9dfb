// Package report renders a finished run as markdown.
package report

import (
	"fmt"
	"regexp"
	"strings"

	"BulletCatalyst/internal/domain/models"
	"BulletCatalyst/pkg/util"
)

// Feed titles habitually end in " - CNBC" style publisher suffixes;
// trimmed so the bullet's own source tag is not duplicated.
var sourceSuffixPattern = regexp.MustCompile(`\s+[-|\x{2013}\x{2014}]\s+[^-|]{2,40}$`)

type Renderer struct {
	maxBullets int
}

func NewRenderer(maxBullets int) *Renderer {
	if maxBullets <= 0 {
		maxBullets = 6
	}
	return &Renderer{maxBullets: maxBullets}
}

// Markdown renders the full report: header with advisories and the
// provider status line, a per-track summary table, then one ranked
// section per provider with scores, catalysts and headline bullets.
func (r *Renderer) Markdown(rep *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Bullet Catalyst Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, adv := range rep.Advisories {
		fmt.Fprintf(&b, "> ⚠ %s\n", adv)
	}
	if len(rep.Advisories) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Status:** %s\n\n", rep.StatusLine())
	fmt.Fprintf(&b, "Scanned %d documents, %d tickers.\n\n", rep.Documents, rep.Tickers)

	if len(rep.Tracks) > 0 {
		b.WriteString("| Track | Top tickers |\n|---|---|\n")
		for _, tr := range rep.Tracks {
			names := make([]string, 0, len(tr.Results))
			for _, m := range tr.Results {
				names = append(names, m.Ticker)
			}
			fmt.Fprintf(&b, "| %s | %s |\n", tr.Label, strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}

	for _, tr := range rep.Tracks {
		fmt.Fprintf(&b, "## %s Top %d\n\n", tr.Label, len(tr.Results))
		for i, m := range tr.Results {
			track := m.Tracks[tr.Provider]
			fmt.Fprintf(&b, "### %d. %s — %.1f\n\n", i+1, m.Ticker, track.Score)
			if track.Rationale != "" {
				fmt.Fprintf(&b, "%s\n\n", track.Rationale)
			}
			if len(track.Catalysts) > 0 {
				fmt.Fprintf(&b, "Catalysts: %s\n\n", strings.Join(track.Catalysts, "; "))
			}
			r.writeBullets(&b, rep.News[m.Ticker])
		}
	}

	return b.String()
}

func (r *Renderer) writeBullets(b *strings.Builder, docs []models.NewsDocument) {
	if len(docs) == 0 {
		return
	}

	seen := make(map[string]struct{})
	written := 0
	for _, d := range docs {
		title := util.CleanSpaces(sourceSuffixPattern.ReplaceAllString(d.Title, ""))
		if title == "" {
			title = util.CleanSpaces(d.Title)
		}
		key := strings.ToLower(title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if d.Source != "" {
			fmt.Fprintf(b, "• %s - %s\n", title, d.Source)
		} else {
			fmt.Fprintf(b, "• %s\n", title)
		}
		written++
		if written >= r.maxBullets {
			break
		}
	}
	if written > 0 {
		b.WriteString("\n")
	}
}
