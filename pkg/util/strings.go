package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseBoolDefault parses common truthy spellings ("1", "true", "yes",
// "y", "on") or returns default if empty/unrecognized.
func ParseBoolDefault(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// MaskSecret renders a credential preview safe for logs: empty values
// become "MISSING", short values are fully masked, longer values keep
// the first three and last four characters.
func MaskSecret(s string) string {
	if s == "" {
		return "MISSING"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:3] + "…" + s[len(s)-4:]
}

// UniqueFold deduplicates strings case-insensitively, preserving first
// occurrence order and dropping blanks.
func UniqueFold(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		k := strings.ToLower(strings.TrimSpace(v))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CleanSpaces collapses all whitespace runs (including newlines and
// tabs) to single spaces and trims the result.
func CleanSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate hard-cuts s to at most n bytes. The cut is not boundary
// aware; callers that feed size-limited provider requests accept the
// loss at the tail.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
