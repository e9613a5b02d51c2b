package converter

import (
	"strings"
)

// Value is the conversion of one name. It holds one string normally, several
// when the name matched more than one record, and none when it was filtered
// out.
type Value struct {
	Values []string
	// Found reports whether the name was in the table or the additional
	// mapping.
	Found bool
}

// IsNull reports whether the value was filtered out.
func (v Value) IsNull() bool {
	return v.Values == nil
}

// String joins multiple matches with ", ". Null is "".
func (v Value) String() string {
	return strings.Join(v.Values, ", ")
}

// Any returns nil, a string or a []string.
func (v Value) Any() any {
	switch len(v.Values) {
	case 0:
		if v.Values == nil {
			return nil
		}
		return []string{}
	case 1:
		return v.Values[0]
	default:
		return append([]string(nil), v.Values...)
	}
}

// Result holds one Value per input name, in input order.
type Result struct {
	Names  []string
	Values []Value
	scalar bool
}

// IsScalar reports whether the result stands for a single value: one name
// was converted and EnforceList was not given.
func (r *Result) IsScalar() bool {
	return r.scalar
}

// Scalar returns the single value of a scalar result.
func (r *Result) Scalar() (Value, bool) {
	if !r.scalar {
		return Value{}, false
	}
	return r.Values[0], true
}

// Strings returns every value as text.
func (r *Result) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.String()
	}
	return out
}

// Any returns the result in its loose form: the single value's Any for a
// scalar result, otherwise a []any of them.
func (r *Result) Any() any {
	if r.scalar {
		return r.Values[0].Any()
	}
	out := make([]any, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.Any()
	}
	return out
}

// Unmatched returns the names that were not found, without duplicates.
func (r *Result) Unmatched() []string {
	seen := make(map[string]bool)
	var out []string
	for i, v := range r.Values {
		if v.Found || v.IsNull() || seen[r.Names[i]] {
			continue
		}
		seen[r.Names[i]] = true
		out = append(out, r.Names[i])
	}
	return out
}
