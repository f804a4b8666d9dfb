package models

// ErrorKind classifies provider-level failures. Failures are carried as
// data on ProviderResult and never raised; the only fatal condition is
// total cross-provider emptiness, handled by the runner.
type ErrorKind string

const (
	ErrNone         ErrorKind = ""
	ErrMissingKey   ErrorKind = "missing_key"
	ErrUnauthorized ErrorKind = "unauthorized"
	ErrHTTP         ErrorKind = "http_error"
	ErrForbidden    ErrorKind = "forbidden"
	ErrNoCredits    ErrorKind = "no_credits"
	ErrParseFailure ErrorKind = "parse_failure"
	ErrTimeout      ErrorKind = "timeout"
	ErrUnavailable  ErrorKind = "unavailable"
)

// SentimentUnset marks an assessment whose provider omitted sentiment
// or returned a non-numeric value. The merge step substitutes the
// provider's neutral default before clamping.
const SentimentUnset = -1

// Assessment is one ticker's evaluation from one provider (or from the
// heuristic fallback).
type Assessment struct {
	Ticker    string   `json:"ticker"`
	Sentiment int      `json:"sentiment"` // 0-100, or SentimentUnset
	Catalysts []string `json:"catalysts"`
	Rationale string   `json:"rationale,omitempty"`
}

// ProviderResult is one provider's response for a batch of tickers.
// If OK is true ErrKind is empty; Results may still be empty when the
// provider legitimately found nothing.
type ProviderResult struct {
	Provider string       `json:"provider"`
	Results  []Assessment `json:"results"`
	OK       bool         `json:"ok"`
	ErrKind  ErrorKind    `json:"error_kind,omitempty"`
	ErrMsg   string       `json:"error_message,omitempty"`
}

// Failure builds a failed result for the named provider.
func Failure(provider string, kind ErrorKind, msg string) ProviderResult {
	return ProviderResult{Provider: provider, ErrKind: kind, ErrMsg: msg}
}

// TrackScore is one provider track's contribution to a MergedResult.
type TrackScore struct {
	Sentiment int      `json:"sentiment"`
	Score     float64  `json:"score"` // sentiment + catalyst bonus, clamped [0,100]
	Catalysts []string `json:"catalysts"`
	Rationale string   `json:"rationale,omitempty"`
}

// MergedResult is the reconciled per-ticker record used for ranking.
// Tracks is keyed by provider name; each provider's score is computed
// from that provider's own catalysts only.
type MergedResult struct {
	Ticker string                `json:"ticker"`
	Tracks map[string]TrackScore `json:"tracks"`
}

// ProviderStatus summarizes one provider's outcome for the report
// header ("OK (12)", "NO_KEY", "NO_CREDITS", "EMPTY", ...).
type ProviderStatus struct {
	Provider string `json:"provider"`
	Label    string `json:"label"`
	State    string `json:"state"`
	Count    int    `json:"count"`
}

// RankedTrack is one provider's top-N selection.
type RankedTrack struct {
	Provider string         `json:"provider"`
	Label    string         `json:"label"`
	Results  []MergedResult `json:"results"`
}
