// Package tickers extracts stock symbols from headline text and article URLs.
package tickers

import (
	"regexp"
	"strings"
)

const maxPerDocument = 5

var (
	cashtagPattern   = regexp.MustCompile(`\$([A-Z]{1,5})\b`)
	parenPattern     = regexp.MustCompile(`\(([A-Z]{1,5})\)`)
	quotePathPattern = regexp.MustCompile(`/quote/([A-Z]{1,5})\b`)
	symbolShape      = regexp.MustCompile(`^[A-Z]{1,5}$`)
)

// Extract finds ticker symbols in a document's text and URL. Candidates
// come from cashtags ($NVDA), parenthesized symbols (NVDA), known company
// names, and quote-page URL paths, in that priority order. The result is
// deduplicated, filtered against the blacklist, capped at five symbols,
// and preserves discovery order.
func Extract(text, url string) []string {
	var found []string
	seen := make(map[string]struct{})

	add := func(symbol string) {
		if !symbolShape.MatchString(symbol) {
			return
		}
		if _, bad := Blacklist[symbol]; bad {
			return
		}
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}
		found = append(found, symbol)
	}

	for _, m := range cashtagPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range parenPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	lower := strings.ToLower(text)
	for _, nm := range KnownNames {
		if strings.Contains(lower, nm.Name) {
			add(nm.Symbol)
		}
	}

	for _, m := range quotePathPattern.FindAllStringSubmatch(url, -1) {
		add(m[1])
	}

	if len(found) > maxPerDocument {
		found = found[:maxPerDocument]
	}
	return found
}
