// Package scheme matches loosely written scheme names against the valid ones.
package scheme

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Closest returns the candidate most similar to word, or "" when no
// candidate reaches cutoff. Equal scores go to the lexically greater
// candidate. "regex" in any case is returned as is.
func Closest(word string, candidates []string, cutoff float64) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "regex" {
		return word
	}

	wordChars := chars(word)
	best, bestScore := "", -1.0
	for _, c := range candidates {
		m := difflib.NewMatcher(chars(c), wordChars)
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && c > best) {
			best, bestScore = c, score
		}
	}
	return strings.ToLower(best)
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
