package resolver

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hightemp/cconv/internal/config"
)

// Request describes one correspondence build.
type Request struct {
	// Source is the scheme of the keys. Empty means guess it per key.
	Source string
	Target string
	// Default is used for keys that are not found. Nil means the key
	// itself, with any exclusion removed, passes through.
	Default *string
	// ExcludePrefixes are patterns marking the part of a key to ignore.
	ExcludePrefixes []string
}

// Correspondence maps each distinct input key to its match.
type Correspondence map[string]Match

// Builder resolves batches of keys.
type Builder struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewBuilder creates a builder on top of a resolver.
func NewBuilder(r *Resolver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{resolver: r, logger: logger}
}

// Correspondence resolves every distinct key. The result is keyed by the
// key as given, before exclusion stripping.
func (b *Builder) Correspondence(keys []string, req Request) (Correspondence, error) {
	table := b.resolver.Table()
	if !table.IsValid(req.Target) {
		return nil, fmt.Errorf("target scheme %q: %w", req.Target, config.ErrInvalid)
	}

	excluder, err := CompileExclusions(req.ExcludePrefixes)
	if err != nil {
		return nil, err
	}

	out := make(Correspondence, len(keys))
	ambiguous := 0
	for _, key := range keys {
		if _, done := out[key]; done {
			continue
		}

		source := req.Source
		if source == "" {
			source = GuessFormat(key)
		}
		ix, err := table.Index(source)
		if err != nil {
			return nil, fmt.Errorf("source scheme for %q: %w", key, err)
		}

		clean := key
		if excluder != nil {
			clean, _ = SplitExcluded(key, excluder)
		}

		def := clean
		if req.Default != nil {
			def = *req.Default
		}
		m := b.resolver.ResolveWith(ix, clean, req.Target, def)
		if m.Ambiguous() {
			ambiguous++
		}
		out[key] = m
	}

	b.logger.Debug("correspondence built", "keys", len(out), "ambiguous", ambiguous, "source", req.Source, "target", req.Target)
	return out, nil
}

// CompileExclusions joins prefixes into one alternation. It returns nil for
// an empty list.
func CompileExclusions(prefixes []string) (*regexp.Regexp, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(strings.Join(prefixes, "|"))
	if err != nil {
		return nil, fmt.Errorf("exclude prefixes: %w: %w", config.ErrInvalid, err)
	}
	return re, nil
}

// SplitExcluded cuts name at every match of excluder. The first part,
// trimmed, is the lookup key; the rest are the excluded parts.
func SplitExcluded(name string, excluder *regexp.Regexp) (string, []string) {
	parts := excluder.Split(name, -1)
	clean := strings.TrimSpace(parts[0])

	var excluded []string
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			excluded = append(excluded, p)
		}
	}
	return clean, excluded
}
