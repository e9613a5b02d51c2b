// Package countries provides the bundled country/region classification table.
package countries

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hightemp/cconv/internal/config"
	"github.com/tidwall/gjson"
)

//go:embed country_data.json
var countryData []byte

// Well-known schemes of the bundled table.
const (
	NameShort    = "name_short"
	NameOfficial = "name_official"
	Regex        = "regex"
	ISO2         = "iso2"
	ISO3         = "iso3"
	ISONumeric   = "isonumeric"
	Continent    = "continent"
	UNRegion     = "unregion"
	UNMember     = "unmember"
	EU           = "eu"
)

// UniqueSchemes should hold distinct values across records.
var UniqueSchemes = []string{NameShort, NameOfficial, Regex}

// RequiredSchemes must be present on every record.
var RequiredSchemes = []string{NameShort, Regex}

// Record is one country or region: scheme name -> value.
type Record struct {
	values map[string]string
}

// NewRecord builds a record from scheme/value pairs. Scheme names are
// lowercased and integer-like values canonicalized.
func NewRecord(values map[string]string) Record {
	r := Record{values: make(map[string]string, len(values))}
	for k, v := range values {
		r.values[strings.ToLower(strings.TrimSpace(k))] = NormalizeValue(v)
	}
	return r
}

// Value returns the record's value for scheme, or "" if it has none.
func (r Record) Value(scheme string) string {
	return r.values[scheme]
}

// Has reports whether the record carries the scheme field at all.
func (r Record) Has(scheme string) bool {
	_, ok := r.values[scheme]
	return ok
}

// Schemes returns the record's field names, sorted.
func (r Record) Schemes() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Schema is the ordered set of field names of a dataset.
type Schema []string

// Contains reports whether scheme is part of the schema.
func (s Schema) Contains(scheme string) bool {
	return slices.Contains(s, scheme)
}

// Dataset is a schema plus its records, in table order.
type Dataset struct {
	Schema  Schema
	Records []Record
}

var (
	bundled    *Dataset
	bundledErr error
	once       sync.Once
)

// Bundled returns the embedded table. It is parsed once.
func Bundled() (*Dataset, error) {
	once.Do(func() {
		bundled, bundledErr = Parse(countryData)
	})
	return bundled, bundledErr
}

// Parse reads a nested JSON document {identity: {scheme: value}} in document
// order. The schema is the union of field names in first-seen order.
func Parse(data []byte) (*Dataset, error) {
	records, err := parseJSONRecords(data)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for i, r := range records {
		for _, req := range RequiredSchemes {
			if r.Value(req) == "" {
				return nil, fmt.Errorf("record %d: missing %s: %w", i, req, config.ErrInvalid)
			}
		}
		for _, k := range r.fieldOrder {
			if !ds.Schema.Contains(k) {
				ds.Schema = append(ds.Schema, k)
			}
		}
		ds.Records = append(ds.Records, r.Record)
	}
	return ds, nil
}

// Merge returns a new dataset with extra appended. Extra records may only use
// schema fields and must have the required ones; other fields they lack read
// as "".
func (d *Dataset) Merge(extra []Record) (*Dataset, error) {
	out := &Dataset{
		Schema:  slices.Clone(d.Schema),
		Records: slices.Clone(d.Records),
	}
	for i, r := range extra {
		for _, k := range r.Schemes() {
			if !d.Schema.Contains(k) {
				return nil, fmt.Errorf("extra record %d: unknown field %q: %w", i, k, config.ErrInvalid)
			}
		}
		for _, req := range RequiredSchemes {
			if r.Value(req) == "" {
				return nil, fmt.Errorf("extra record %d: missing %s: %w", i, req, config.ErrInvalid)
			}
		}
		out.Records = append(out.Records, r)
	}
	return out, nil
}

// Duplicates returns, per unique scheme, the values held by more than one record.
func Duplicates(records []Record) map[string][]string {
	dups := make(map[string][]string)
	for _, scheme := range UniqueSchemes {
		seen := make(map[string]int)
		for _, r := range records {
			if v := r.Value(scheme); v != "" {
				seen[v]++
			}
		}
		for v, n := range seen {
			if n > 1 {
				dups[scheme] = append(dups[scheme], v)
			}
		}
		sort.Strings(dups[scheme])
	}
	for k, v := range dups {
		if len(v) == 0 {
			delete(dups, k)
		}
	}
	return dups
}

// CanonicalInt returns the canonical text of an integer-like string
// ("004" -> "4", " +7 " -> "7").
func CanonicalInt(s string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n), true
}

// NormalizeValue canonicalizes integer-like values and leaves the rest alone.
func NormalizeValue(s string) string {
	if c, ok := CanonicalInt(s); ok {
		return c
	}
	return s
}

type orderedRecord struct {
	Record
	fieldOrder []string
}

// parseJSONRecords accepts either an object of objects or an array of objects.
func parseJSONRecords(data []byte) ([]orderedRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON: %w", config.ErrInvalid)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() && !root.IsArray() {
		return nil, fmt.Errorf("expected object or array of records: %w", config.ErrInvalid)
	}

	var records []orderedRecord
	var walkErr error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			walkErr = fmt.Errorf("entry %s is not an object: %w", key.String(), config.ErrInvalid)
			return false
		}
		values := make(map[string]string)
		var order []string
		value.ForEach(func(k, v gjson.Result) bool {
			if v.IsObject() || v.IsArray() {
				walkErr = fmt.Errorf("entry %s: field %s is not a scalar: %w", key.String(), k.String(), config.ErrInvalid)
				return false
			}
			name := strings.ToLower(strings.TrimSpace(k.String()))
			if _, dup := values[name]; !dup {
				order = append(order, name)
			}
			values[name] = v.String()
			return true
		})
		if walkErr != nil {
			return false
		}
		records = append(records, orderedRecord{Record: NewRecord(values), fieldOrder: order})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return records, nil
}
