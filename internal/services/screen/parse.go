package screen

import (
	"encoding/json"
	"regexp"
	"strings"

	"BulletCatalyst/internal/domain/models"
)

// Provider replies are JSON in theory and almost-JSON in practice.
// decodeResults tries three progressively more forgiving passes before
// giving up: strict JSON after fence stripping, a brace-balanced
// substring around the "results" key, and a lenient repair that quotes
// bare keys. A nil return means none of the passes produced results.

var (
	fencePattern   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	bareKeyPattern = regexp.MustCompile(`(['"])?([a-zA-Z0-9_]+)(['"])?\s*:`)
)

type resultEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

func decodeResults(raw string) []models.Assessment {
	candidate := raw
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	}

	if out, ok := tryEnvelope(candidate); ok {
		return out
	}
	if sub := extractResultsObject(candidate); sub != "" {
		if out, ok := tryEnvelope(sub); ok {
			return out
		}
		if out, ok := tryEnvelope(repairJSON(sub)); ok {
			return out
		}
	}
	if out, ok := tryEnvelope(repairJSON(candidate)); ok {
		return out
	}
	return nil
}

func tryEnvelope(s string) ([]models.Assessment, bool) {
	var env resultEnvelope
	if err := json.Unmarshal([]byte(s), &env); err != nil || env.Results == nil {
		return nil, false
	}
	out := make([]models.Assessment, 0, len(env.Results))
	for _, raw := range env.Results {
		if a, ok := coerceAssessment(raw); ok {
			out = append(out, a)
		}
	}
	return out, true
}

// extractResultsObject finds the object enclosing the "results" key by
// walking back to its opening brace and scanning forward with a depth
// counter, honoring string literals and escapes.
func extractResultsObject(s string) string {
	idx := strings.Index(s, `"results"`)
	if idx < 0 {
		idx = strings.Index(s, `'results'`)
	}
	if idx < 0 {
		return ""
	}

	start := strings.LastIndex(s[:idx], "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON quotes bare and single-quoted keys and converts single
// quotes to double quotes. Crude but recovers the common LLM slips.
func repairJSON(s string) string {
	s = bareKeyPattern.ReplaceAllString(s, `"$2":`)
	return strings.ReplaceAll(s, "'", `"`)
}

// coerceAssessment accepts a loosely typed result entry. Sentiment may
// arrive as a number, a numeric string, or be missing entirely; the two
// latter cases carry SentimentUnset. Entries without a ticker are
// dropped.
func coerceAssessment(raw json.RawMessage) (models.Assessment, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.Assessment{}, false
	}

	ticker, _ := m["ticker"].(string)
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return models.Assessment{}, false
	}

	a := models.Assessment{Ticker: ticker, Sentiment: models.SentimentUnset}

	switch v := m["sentiment"].(type) {
	case float64:
		a.Sentiment = int(v)
	case string:
		if n, err := json.Number(strings.TrimSpace(v)).Float64(); err == nil {
			a.Sentiment = int(n)
		}
	}

	if list, ok := m["catalysts"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				a.Catalysts = append(a.Catalysts, strings.TrimSpace(s))
			}
		}
	}
	if r, ok := m["rationale"].(string); ok {
		a.Rationale = strings.TrimSpace(r)
	}
	return a, true
}
