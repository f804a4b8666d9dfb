package heuristic

import (
	"regexp"
	"strings"
)

// Keyword tables used by the offline scorer and the catalyst bonus.
// Each rule is a named predicate with a fixed weight so the tables can
// be listed and tested one rule at a time.

type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  float64
}

// SentimentRules adjust the neutral baseline when scoring headlines
// without a model. Adjustments are independent and additive.
var SentimentRules = []Rule{
	{"bullish-words", regexp.MustCompile(`\b(beat|upgrade|raise|contract|win|license|record|guidance|ai|chip|backlog)\b`), 15},
	{"bearish-words", regexp.MustCompile(`\b(downgrade|miss|probe|lawsuit|recall|cut|layoff|guidance cut|halt)\b`), -15},
}

// CatalystRules weigh named catalysts reported by a provider. Bullish
// events add, adverse events subtract more sharply.
var CatalystRules = []Rule{
	{"bullish-catalyst", regexp.MustCompile(`(upgrade|beat|raise|guide|margin|contract|order|backlog|ai|launch|license|win|guidance|eps|rev(?:enue)?)`), 5},
	{"bearish-catalyst", regexp.MustCompile(`(lawsuit|probe|miss|restatement|delist|default|downgrade|dilution)`), -8},
}

// CatalystBonus sums the weight of every catalyst rule each catalyst
// string matches. Matching is case-insensitive.
func CatalystBonus(catalysts []string) float64 {
	var bonus float64
	for _, c := range catalysts {
		lc := strings.ToLower(c)
		for _, r := range CatalystRules {
			if r.Pattern.MatchString(lc) {
				bonus += r.Weight
			}
		}
	}
	return bonus
}
