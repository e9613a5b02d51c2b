// Package resolver finds records for raw country names and codes.
package resolver

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hightemp/cconv/internal/countries"
	"github.com/hightemp/cconv/internal/index"
)

var nonLetters = regexp.MustCompile(`[^a-zA-Z]+`)

// Match is the outcome of resolving one input.
type Match struct {
	// Values holds one value per matched record, in table order. On a miss
	// it holds the default.
	Values []string
	// Found reports whether the table had the input.
	Found bool
}

// Value returns the first value, or "" if there is none.
func (m Match) Value() string {
	if len(m.Values) == 0 {
		return ""
	}
	return m.Values[0]
}

// Ambiguous reports whether more than one record matched.
func (m Match) Ambiguous() bool {
	return len(m.Values) > 1
}

// Resolver resolves names against a classification table.
type Resolver struct {
	table  *index.Table
	logger *slog.Logger
}

// NewResolver creates a resolver bound to table.
func NewResolver(table *index.Table, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{table: table, logger: logger}
}

// Table returns the table the resolver reads from.
func (r *Resolver) Table() *index.Table {
	return r.table
}

// ResolveWith looks input up in ix and returns its value(s) under target.
// A miss is logged and yields def; it is never an error.
func (r *Resolver) ResolveWith(ix *index.Index, input, target, def string) Match {
	var entries []index.Entry
	if ix.IsPattern() {
		entries = ix.Search(input)
		if len(entries) > 1 {
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Field(countries.NameShort)
			}
			r.logger.Warn("more than one match", "input", input, "scheme", ix.Scheme(), "matches", names)
		}
	} else if e, ok := ix.Lookup(input); ok {
		entries = []index.Entry{e}
	}

	if len(entries) == 0 {
		r.logger.Warn("not found", "input", input, "scheme", ix.Scheme())
		return Match{Values: []string{def}}
	}

	values := make([]string, len(entries))
	for i, e := range entries {
		values[i] = targetValue(e, target)
	}
	return Match{Values: values, Found: true}
}

func targetValue(e index.Entry, target string) string {
	v := e.Field(target)
	if target == countries.ISO2 {
		first, _, _ := strings.Cut(v, "|")
		return nonLetters.ReplaceAllString(first, "")
	}
	return v
}

// GuessFormat guesses the scheme of a name: integers are isonumeric, two
// characters iso2, three iso3 and anything else a regex lookup.
func GuessFormat(name string) string {
	if _, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		return countries.ISONumeric
	}
	switch utf8.RuneCountInString(name) {
	case 2:
		return countries.ISO2
	case 3:
		return countries.ISO3
	default:
		return countries.Regex
	}
}
