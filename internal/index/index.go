// Package index re-keys the classification table on one scheme.
package index

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hightemp/cconv/internal/config"
	"github.com/hightemp/cconv/internal/countries"
)

// Entry is one record under its index key.
type Entry struct {
	Key     string
	Record  countries.Record
	pattern *regexp.Regexp
}

// Field returns the entry's value for scheme.
func (e Entry) Field(scheme string) string {
	return e.Record.Value(scheme)
}

// Index is an immutable view of the records keyed by one scheme.
type Index struct {
	scheme  string
	pattern bool
	entries []Entry
	byKey   map[string]int
}

// IsPatternScheme reports whether values of scheme are matched as regular
// expressions rather than looked up as plain keys.
func IsPatternScheme(scheme string) bool {
	return scheme == countries.Regex || scheme == countries.ISO2
}

// NormalizeKey lowercases a plain key and canonicalizes integer-like keys.
func NormalizeKey(key string) string {
	if c, ok := countries.CanonicalInt(key); ok {
		return c
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Build indexes records on scheme. Records without a value for scheme are
// skipped. A duplicate key replaces the earlier record but keeps its position.
func Build(records []countries.Record, scheme string) (*Index, error) {
	ix := &Index{
		scheme:  scheme,
		pattern: IsPatternScheme(scheme),
		byKey:   make(map[string]int),
	}

	for _, r := range records {
		raw := r.Value(scheme)
		if raw == "" {
			continue
		}

		e := Entry{Key: raw, Record: r}
		if ix.pattern {
			re, err := regexp.Compile("(?i)" + raw)
			if err != nil {
				return nil, fmt.Errorf("index %s: pattern %q: %w: %w", scheme, raw, config.ErrInvalid, err)
			}
			e.pattern = re
		} else {
			e.Key = NormalizeKey(raw)
		}

		if i, ok := ix.byKey[e.Key]; ok {
			ix.entries[i] = e
			continue
		}
		ix.byKey[e.Key] = len(ix.entries)
		ix.entries = append(ix.entries, e)
	}

	return ix, nil
}

// Scheme returns the scheme the index is keyed on.
func (ix *Index) Scheme() string { return ix.scheme }

// IsPattern reports whether keys are regular expressions.
func (ix *Index) IsPattern() bool { return ix.pattern }

// Len returns the number of keys.
func (ix *Index) Len() int { return len(ix.entries) }

// Entries returns the entries in table order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Search returns every entry whose pattern matches input, in table order.
// When nothing matches, the search is retried once with accents folded.
// Plain indexes fall back to Lookup.
func (ix *Index) Search(input string) []Entry {
	if !ix.pattern {
		if e, ok := ix.Lookup(input); ok {
			return []Entry{e}
		}
		return nil
	}

	lowered := strings.ToLower(input)
	matches := ix.search(lowered)
	if len(matches) == 0 {
		if folded := countries.Fold(lowered); folded != lowered {
			matches = ix.search(folded)
		}
	}
	return matches
}

func (ix *Index) search(s string) []Entry {
	var matches []Entry
	for _, e := range ix.entries {
		if e.pattern.MatchString(s) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Lookup finds the entry for a plain key. Pattern indexes compare the
// key text itself.
func (ix *Index) Lookup(key string) (Entry, bool) {
	k := key
	if !ix.pattern {
		k = NormalizeKey(key)
	}
	i, ok := ix.byKey[k]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}
