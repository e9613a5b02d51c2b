package converter

import (
	"log/slog"
)

// Option configures a Converter.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	target    string
	onlyUN    bool
	records   []map[string]string
	dataFiles []string
}

// WithLogger sets the logger warnings are written to.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTarget sets the scheme names are converted to when Convert is not
// given one. Defaults to iso3. Loose spellings are accepted as with To.
func WithTarget(scheme string) Option {
	return func(o *options) {
		o.target = scheme
	}
}

// WithOnlyUNMembers makes Convert return null values for anything that is
// not a UN member.
func WithOnlyUNMembers(only bool) Option {
	return func(o *options) {
		o.onlyUN = only
	}
}

// WithRecords adds extra records (scheme -> value) to the bundled table.
// They may only use the bundled table's schemes and need a short name and a
// regex.
func WithRecords(records ...map[string]string) Option {
	return func(o *options) {
		o.records = append(o.records, records...)
	}
}

// WithDataFiles adds extra records read from .tsv, .csv, .yaml or .json
// files.
func WithDataFiles(paths ...string) Option {
	return func(o *options) {
		o.dataFiles = append(o.dataFiles, paths...)
	}
}

// ConvertOption configures a single Convert call.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	from          string
	to            string
	src           string
	enforceList   bool
	notFound      *string
	exclude       []string
	excludeSet    bool
	extraMappings map[string]string
}

// From sets the scheme of the names. Loose spellings are accepted
// ("ISO 3", "isonum"). Without it the scheme is guessed per name.
func From(scheme string) ConvertOption {
	return func(o *convertOptions) {
		o.from = scheme
	}
}

// To sets the target scheme.
func To(scheme string) ConvertOption {
	return func(o *convertOptions) {
		o.to = scheme
	}
}

// Src is the old name of From.
//
// Deprecated: use From.
func Src(scheme string) ConvertOption {
	return func(o *convertOptions) {
		o.src = scheme
	}
}

// EnforceList keeps a single result as a list.
func EnforceList() ConvertOption {
	return func(o *convertOptions) {
		o.enforceList = true
	}
}

// NotFound sets the value returned for names that are not found. Without
// it the name itself is returned.
func NotFound(value string) ConvertOption {
	return func(o *convertOptions) {
		o.notFound = &value
	}
}

// ExcludePrefix replaces the default exclusion patterns. Everything from
// the first match on is ignored, so "Asia excluding China" is read as
// "Asia". Calling it with no patterns disables exclusion.
func ExcludePrefix(patterns ...string) ConvertOption {
	return func(o *convertOptions) {
		o.exclude = patterns
		o.excludeSet = true
	}
}

// AdditionalMapping sets name -> value overrides. Keys are compared case
// insensitively and win over the table.
func AdditionalMapping(mapping map[string]string) ConvertOption {
	return func(o *convertOptions) {
		if o.extraMappings == nil {
			o.extraMappings = make(map[string]string, len(mapping))
		}
		for k, v := range mapping {
			o.extraMappings[k] = v
		}
	}
}
