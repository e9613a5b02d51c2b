// Package converter converts country names and codes between classification
// schemes such as iso2, iso3, isonumeric, name_short, continent or UN region.
//
// Names are resolved against a bundled table of countries and regions. Names
// that cannot be resolved are logged and returned unchanged, or replaced by
// the NotFound value:
//
//	c, _ := converter.New()
//	res, _ := c.Convert([]string{"GTM", "montserrat"}, converter.To("ISO2"))
//	res.Strings() // [GT MS]
//
// A Converter is safe for concurrent use.
package converter

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hightemp/cconv/internal/config"
	"github.com/hightemp/cconv/internal/countries"
	"github.com/hightemp/cconv/internal/index"
	"github.com/hightemp/cconv/internal/resolver"
	"github.com/hightemp/cconv/internal/scheme"
)

// Converter converts names between schemes.
type Converter struct {
	table   *index.Table
	builder *resolver.Builder
	target  string
	onlyUN  bool
	logger  *slog.Logger
}

// New creates a converter over the bundled table plus any extra records.
func New(opts ...Option) (*Converter, error) {
	o := options{target: config.DefaultTarget}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	ds, err := countries.Bundled()
	if err != nil {
		return nil, fmt.Errorf("load bundled table: %w", err)
	}

	var extra []countries.Record
	for _, values := range o.records {
		extra = append(extra, countries.NewRecord(values))
	}
	for _, path := range o.dataFiles {
		records, err := countries.ReadFile(path)
		if err != nil {
			return nil, err
		}
		extra = append(extra, records...)
	}

	table, err := index.Load(ds, extra, o.logger)
	if err != nil {
		return nil, err
	}
	target := scheme.Closest(o.target, table.ValidSchemes(), config.SimilarityCutoff)
	if target == "" {
		return nil, fmt.Errorf("target scheme %q: %w", o.target, ErrConfig)
	}

	r := resolver.NewResolver(table, o.logger)
	return &Converter{
		table:   table,
		builder: resolver.NewBuilder(r, o.logger),
		target:  target,
		onlyUN:  o.onlyUN,
		logger:  o.logger,
	}, nil
}

// Target returns the default target scheme.
func (c *Converter) Target() string {
	return c.target
}

// ValidSchemes returns the schemes names can be converted from and to.
func (c *Converter) ValidSchemes() []string {
	return c.table.ValidSchemes()
}

// Scheme maps a loosely written scheme name to a valid one, or "" when
// nothing is close enough.
func (c *Converter) Scheme(name string) string {
	if name == "" {
		return ""
	}
	return scheme.Closest(name, c.table.ValidSchemes(), config.SimilarityCutoff)
}

// Convert converts names, which may be a string, a number, a fmt.Stringer or
// a slice or array of those. Results keep the input order and duplicates.
func (c *Converter) Convert(names any, opts ...ConvertOption) (*Result, error) {
	var o convertOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.src != "" {
		c.logger.Warn("src is deprecated, use from instead", "src", o.src)
		if o.from != "" && o.from != o.src {
			return nil, fmt.Errorf("src %q, from %q: %w", o.src, o.from, ErrConflictingArguments)
		}
		o.from = o.src
	}

	exclude := config.DefaultExcludePrefixes
	if o.excludeSet {
		exclude = o.exclude
	}

	from := c.Scheme(o.from)
	if o.from != "" && from == "" {
		c.logger.Warn("unknown source scheme, guessing per name", "from", o.from)
	}
	to := c.target
	if o.to != "" {
		if to = c.Scheme(o.to); to == "" {
			c.logger.Warn("unknown target scheme, using default", "to", o.to, "default", c.target)
			to = c.target
		}
	}

	inputs, err := toNames(names)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(o.extraMappings))
	for k, v := range o.extraMappings {
		mapping[strings.ToLower(k)] = v
	}

	req := resolver.Request{
		Source:          from,
		Target:          to,
		Default:         o.notFound,
		ExcludePrefixes: exclude,
	}
	corr, err := c.builder.Correspondence(inputs, req)
	if err != nil {
		return nil, err
	}

	var members resolver.Correspondence
	if c.onlyUN {
		none := ""
		req.Target = config.UNMemberScheme
		req.Default = &none
		if members, err = c.builder.Correspondence(inputs, req); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Names:  inputs,
		Values: make([]Value, len(inputs)),
		scalar: !o.enforceList && len(inputs) == 1,
	}
	for i, name := range inputs {
		if members != nil && !isMember(members[name]) {
			continue
		}
		if v, ok := mapping[strings.ToLower(name)]; ok {
			res.Values[i] = Value{Values: []string{v}, Found: true}
			continue
		}
		m := corr[name]
		res.Values[i] = Value{Values: m.Values, Found: m.Found}
	}
	return res, nil
}

// isMember reports whether the match is a single membership year.
func isMember(m resolver.Match) bool {
	if m.Ambiguous() {
		return false
	}
	_, ok := countries.CanonicalInt(m.Value())
	return ok
}

var (
	defaultConverter    *Converter
	defaultConverterErr error
	defaultOnce         sync.Once
)

// Default returns a shared converter with default options.
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		defaultConverter, defaultConverterErr = New()
	})
	return defaultConverter, defaultConverterErr
}

// Convert converts names with the shared default converter.
func Convert(names any, opts ...ConvertOption) (*Result, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Convert(names, opts...)
}
