package countries

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hightemp/cconv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	if len(ds.Records) < 240 {
		t.Errorf("Expected at least 240 records, got %d", len(ds.Records))
	}

	want := Schema{NameShort, NameOfficial, Regex, ISO2, ISO3, ISONumeric, Continent, UNRegion, UNMember, EU}
	if diff := cmp.Diff(want, ds.Schema); diff != "" {
		t.Errorf("Schema mismatch (-want +got):\n%s", diff)
	}

	// Document order is kept.
	assert.Equal(t, "Afghanistan", ds.Records[0].Value(NameShort))
	assert.Equal(t, "Zimbabwe", ds.Records[len(ds.Records)-1].Value(NameShort))
}

func TestBundledUnique(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	dups := Duplicates(ds.Records)
	assert.Empty(t, dups)
}

func TestBundledRecords(t *testing.T) {
	ds, err := Bundled()
	require.NoError(t, err)

	byName := make(map[string]Record)
	for _, r := range ds.Records {
		byName[r.Value(NameShort)] = r
	}

	tests := []struct {
		name     string
		scheme   string
		expected string
	}{
		{"Germany", ISO3, "DEU"},
		{"Germany", ISO2, "DE"},
		{"Germany", EU, "1958"},
		{"Afghanistan", ISONumeric, "4"},
		{"Greece", ISO2, "GR|EL"},
		{"United Kingdom", ISO2, "GB|UK"},
		{"Kosovo", ISONumeric, ""},
		{"Taiwan", UNMember, ""},
	}

	for _, tc := range tests {
		r, ok := byName[tc.name]
		if !ok {
			t.Errorf("record %q not found", tc.name)
			continue
		}
		if got := r.Value(tc.scheme); got != tc.expected {
			t.Errorf("%s.%s = %q, expected %q", tc.name, tc.scheme, got, tc.expected)
		}
	}
}

func TestCanonicalInt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"004", "4", true},
		{"4", "4", true},
		{" 276 ", "276", true},
		{"+7", "7", true},
		{"-1", "-1", true},
		{"", "", false},
		{"4.0", "", false},
		{"DE", "", false},
	}

	for _, tc := range tests {
		got, ok := CanonicalInt(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("CanonicalInt(%q) = %q, %v, expected %q, %v", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord(map[string]string{"Name_Short": "Test", " ISONumeric ": "007", "regex": "test"})

	assert.Equal(t, "Test", r.Value(NameShort))
	assert.Equal(t, "7", r.Value(ISONumeric))
	assert.True(t, r.Has(Regex))
	assert.False(t, r.Has(ISO3))
	assert.Equal(t, "", r.Value(ISO3))
	assert.Equal(t, []string{"isonumeric", "name_short", "regex"}, r.Schemes())
}

func TestParse(t *testing.T) {
	data := `{
		"B": {"name_short": "B", "regex": "^b$", "iso3": "BBB"},
		"A": {"name_short": "A", "regex": "^a$", "extra": 1}
	}`

	ds, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, "B", ds.Records[0].Value(NameShort))
	assert.Equal(t, "1", ds.Records[1].Value("extra"))
	assert.Equal(t, Schema{"name_short", "regex", "iso3", "extra"}, ds.Schema)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"A": `},
		{"scalar root", `"A"`},
		{"non-object entry", `{"A": 1}`},
		{"nested field", `{"A": {"name_short": "A", "regex": "a", "x": {}}}`},
		{"missing regex", `{"A": {"name_short": "A"}}`},
		{"missing name", `{"A": {"regex": "a"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, expected ErrInvalid", tc.data, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	ds, err := Parse([]byte(`{"A": {"name_short": "A", "regex": "^a$", "iso3": "AAA"}}`))
	require.NoError(t, err)

	merged, err := ds.Merge([]Record{NewRecord(map[string]string{"name_short": "X", "regex": "^x$"})})
	require.NoError(t, err)
	require.Len(t, merged.Records, 2)
	assert.Len(t, ds.Records, 1, "source dataset must not change")
	assert.Equal(t, "", merged.Records[1].Value(ISO3))

	_, err = ds.Merge([]Record{NewRecord(map[string]string{"name_short": "X", "regex": "x", "bogus": "1"})})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = ds.Merge([]Record{NewRecord(map[string]string{"name_short": "X"})})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = ds.Merge([]Record{NewRecord(map[string]string{"regex": "^x$", "iso3": "XXX"})})
	assert.ErrorIs(t, err, config.ErrInvalid, "name_short is required")
}

func TestDuplicates(t *testing.T) {
	records := []Record{
		NewRecord(map[string]string{"name_short": "A", "name_official": "Same", "regex": "a"}),
		NewRecord(map[string]string{"name_short": "B", "name_official": "Same", "regex": "b"}),
		NewRecord(map[string]string{"name_short": "A", "name_official": "", "regex": "c"}),
	}

	want := map[string][]string{
		NameShort:    {"A"},
		NameOfficial: {"Same"},
	}
	if diff := cmp.Diff(want, Duplicates(records)); diff != "" {
		t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Curaçao", "Curacao"},
		{"perú", "peru"},
		{"méxico", "mexico"},
		{"Réunion", "Reunion"},
		{"Germany", "Germany"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Fold(tc.input); got != tc.expected {
			t.Errorf("Fold(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestReadDelimited(t *testing.T) {
	content := "Name_Short\tRegex\tISO3\tISONumeric\n" +
		"# comment\n" +
		"Narnia\tnarnia\tNRN\t0999\n" +
		"Lilliput\tlilliput\n"

	records, err := ReadDelimited(strings.NewReader(content), '\t')
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Narnia", records[0].Value(NameShort))
	assert.Equal(t, "999", records[0].Value(ISONumeric))
	assert.Equal(t, "lilliput", records[1].Value(Regex))
	assert.Equal(t, "", records[1].Value(ISO3))

	_, err = ReadDelimited(strings.NewReader("a,b\n1,2,3\n"), ',')
	assert.ErrorIs(t, err, config.ErrInvalid)

	records, err = ReadDelimited(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadYAML(t *testing.T) {
	content := `
- name_short: Narnia
  regex: narnia
  isonumeric: 999
  iso2: ~
`
	records, err := ReadYAML([]byte(content))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "999", records[0].Value(ISONumeric))
	assert.True(t, records[0].Has(ISO2))
	assert.Equal(t, "", records[0].Value(ISO2))

	_, err = ReadYAML([]byte("name_short: Narnia"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestReadJSONArray(t *testing.T) {
	records, err := ReadJSON([]byte(`[{"name_short": "Narnia", "regex": "narnia"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Narnia", records[0].Value(NameShort))
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"extra.tsv":  "name_short\tregex\nNarnia\tnarnia\n",
		"extra.csv":  "name_short,regex\nNarnia,narnia\n",
		"extra.yaml": "- {name_short: Narnia, regex: narnia}\n",
		"extra.json": `{"Narnia": {"name_short": "Narnia", "regex": "narnia"}}`,
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		records, err := ReadFile(path)
		require.NoError(t, err, name)
		require.Len(t, records, 1, name)
		assert.Equal(t, "Narnia", records[0].Value(NameShort), name)
	}

	bad := filepath.Join(tmpDir, "extra.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<x/>"), 0644))
	_, err := ReadFile(bad)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = ReadFile(filepath.Join(tmpDir, "missing.tsv"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}
