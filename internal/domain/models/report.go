package models

import (
	"fmt"
	"strings"
	"time"
)

// Report is one completed screen run, handed to the report renderer
// and served over the API. It owns no cross-run state.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Status      []ProviderStatus `json:"status"`
	Advisories  []string         `json:"advisories,omitempty"` // degraded-provider notices
	Tracks      []RankedTrack    `json:"tracks"`
	Documents   int              `json:"documents"`
	Tickers     int              `json:"tickers"`

	// News retained for headline bullets in the rendered report.
	News map[string][]NewsDocument `json:"-"`
}

// StatusLine formats the per-provider status summary used in the report
// header and the subject line, e.g. "GPT: OK (12) | Grok: NO_CREDITS".
func (r *Report) StatusLine() string {
	parts := make([]string, 0, len(r.Status))
	for _, s := range r.Status {
		if s.State == "OK" {
			parts = append(parts, fmt.Sprintf("%s: OK (%d)", s.Label, s.Count))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Label, s.State))
		}
	}
	return strings.Join(parts, " | ")
}
