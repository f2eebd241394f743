// Package term canonicalizes free-form query and record text before comparison.
// Every match in the engine goes through the same normalization on both sides.
package term

import "strings"

// Normalize trims surrounding whitespace and lowercases.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSet normalizes every element, drops empties, and dedupes
// preserving first-seen order.
func NormalizeSet(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Tokenize splits normalized text on whitespace runs, dropping empties.
func Tokenize(text string) []string {
	return NormalizeSet(strings.Fields(Normalize(text)))
}
