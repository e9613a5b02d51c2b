package index

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hightemp/cconv/internal/config"
	"github.com/hightemp/cconv/internal/countries"
)

// Table holds the records and a cache of per-scheme indexes, each built on
// first use and never changed afterwards. A Table is safe for concurrent use.
type Table struct {
	records []countries.Record
	schemes map[string]bool
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]*Index
}

// NewTable builds a table over records. The regex index is built eagerly so
// invalid patterns are reported here.
func NewTable(records []countries.Record, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{
		records: records,
		schemes: make(map[string]bool),
		logger:  logger,
		cache:   make(map[string]*Index),
	}
	for _, r := range records {
		for _, s := range r.Schemes() {
			t.schemes[s] = true
		}
	}

	for scheme, values := range countries.Duplicates(records) {
		logger.Warn("duplicate values in unique field", "scheme", scheme, "values", values)
	}

	if _, err := t.Index(countries.Regex); err != nil {
		return nil, err
	}
	return t, nil
}

// Load builds a table from a dataset, adding any extra records first.
func Load(ds *countries.Dataset, extra []countries.Record, logger *slog.Logger) (*Table, error) {
	if len(extra) > 0 {
		merged, err := ds.Merge(extra)
		if err != nil {
			return nil, fmt.Errorf("merge extra records: %w", err)
		}
		ds = merged
	}
	return NewTable(ds.Records, logger)
}

// Index returns the index for scheme, building it on first use.
func (t *Table) Index(scheme string) (*Index, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.indexLocked(scheme)
}

func (t *Table) indexLocked(scheme string) (*Index, error) {
	if ix, ok := t.cache[scheme]; ok {
		return ix, nil
	}
	if !t.schemes[scheme] {
		return nil, fmt.Errorf("unknown scheme %q: %w", scheme, config.ErrInvalid)
	}

	ix, err := Build(t.records, scheme)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("index built", "scheme", scheme, "keys", ix.Len())
	t.cache[scheme] = ix
	return ix, nil
}

// IsValid reports whether scheme is a field of any record.
func (t *Table) IsValid(scheme string) bool {
	return t.schemes[scheme]
}

// ValidSchemes returns every scheme present in the records, sorted.
func (t *Table) ValidSchemes() []string {
	out := make([]string, 0, len(t.schemes))
	for s := range t.schemes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Records returns the table's records in table order.
func (t *Table) Records() []countries.Record {
	return t.records
}
