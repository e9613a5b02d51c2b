package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var valid = []string{
	"continent", "eu", "iso2", "iso3", "isonumeric",
	"name_official", "name_short", "regex", "unmember", "unregion",
}

func TestClosest(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"iso2", "iso2"},
		{"ISO2", "iso2"},
		{"ISO 3", "iso3"},
		{"iso_numeric", "isonumeric"},
		{"isonum", "isonumeric"},
		{"name", "name_short"},
		{"short", "name_short"},
		{"official", "name_official"},
		{"continents", "continent"},
		{"un_region", "unregion"},
		{"EU", "eu"},
		{"REGEX", "regex"},
		{"Regex", "regex"},
		// Tie between iso2 and iso3.
		{"iso", "iso3"},
		{"un", ""},
		{"xyz", ""},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Closest(tc.input, valid, 0.55); got != tc.expected {
			t.Errorf("Closest(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestClosestRegexWithoutCandidates(t *testing.T) {
	assert.Equal(t, "regex", Closest("regex", nil, 0.55))
	assert.Equal(t, "", Closest("iso3", nil, 0.55))
}
