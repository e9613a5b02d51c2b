package converter

import (
	"fmt"

	"github.com/hightemp/cconv/internal/countries"
)

// Entry is one row of a Column.
type Entry struct {
	Name  string `json:"name_short"`
	Value string `json:"value"`
}

// Column is one scheme's values across the table, keyed by short name.
type Column struct {
	Scheme  string
	Entries []Entry
}

// Header returns the column names of the tabular form.
func (c *Column) Header() []string {
	if c.Scheme == countries.NameShort {
		return []string{"name", c.Scheme}
	}
	return []string{countries.NameShort, c.Scheme}
}

// Map returns short name -> value.
func (c *Column) Map() map[string]string {
	m := make(map[string]string, len(c.Entries))
	for _, e := range c.Entries {
		m[e.Name] = e.Value
	}
	return m
}

// Column returns every record's value for scheme in table order. Records
// without a value are left out; of records sharing a short name the last one
// wins.
func (c *Converter) Column(scheme string) (*Column, error) {
	if !c.table.IsValid(scheme) {
		return nil, fmt.Errorf("scheme %q: %w", scheme, ErrConfig)
	}
	names, err := c.table.Index(countries.NameShort)
	if err != nil {
		return nil, err
	}

	col := &Column{Scheme: scheme}
	for _, e := range names.Entries() {
		v := e.Field(scheme)
		if v == "" {
			continue
		}
		col.Entries = append(col.Entries, Entry{Name: e.Field(countries.NameShort), Value: v})
	}
	return col, nil
}
