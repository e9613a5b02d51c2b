// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hightemp/cconv/pkg/converter"
)

// NullText stands for a value that was filtered out.
const NullText = "-"

var unmatched = color.New(color.FgYellow).SprintFunc()

// ConversionResult is the conversion of one name.
type ConversionResult struct {
	Input string `json:"input"`
	// Value is a string, a list of strings for ambiguous names, or null.
	Value any  `json:"value"`
	Found bool `json:"found"`
}

// NewConversionResults flattens a conversion into one result per name.
func NewConversionResults(res *converter.Result) []*ConversionResult {
	out := make([]*ConversionResult, len(res.Values))
	for i, v := range res.Values {
		out[i] = &ConversionResult{
			Input: res.Names[i],
			Value: v.Any(),
			Found: v.Found,
		}
	}
	return out
}

// ValueText returns the value as text. Unmatched values are highlighted when
// the terminal supports color.
func (r *ConversionResult) ValueText() string {
	var s string
	switch v := r.Value.(type) {
	case nil:
		return NullText
	case string:
		s = v
	case []string:
		s = strings.Join(v, ", ")
	default:
		s = fmt.Sprint(v)
	}
	if !r.Found {
		return unmatched(s)
	}
	return s
}

// FormatText formats result as tab-separated text.
func (r *ConversionResult) FormatText() string {
	return fmt.Sprintf("%s\t%s", r.Input, r.ValueText())
}

// FormatJSON formats result as JSON.
func (r *ConversionResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BatchResult contains results for several names.
type BatchResult struct {
	Results []*ConversionResult
}

// NewBatchResult wraps a conversion.
func NewBatchResult(res *converter.Result) *BatchResult {
	return &BatchResult{Results: NewConversionResults(res)}
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatValues formats only the values, one per line.
func (b *BatchResult) FormatValues() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.ValueText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	results := b.Results
	if results == nil {
		results = []*ConversionResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatColumnText formats a column as tab-separated text with a header.
func FormatColumnText(col *converter.Column) string {
	lines := []string{strings.Join(col.Header(), "\t")}
	for _, e := range col.Entries {
		lines = append(lines, e.Name+"\t"+e.Value)
	}
	return strings.Join(lines, "\n")
}

// FormatColumnJSON formats a column as a JSON array of rows keyed by the
// column header.
func FormatColumnJSON(col *converter.Column) (string, error) {
	header := col.Header()
	rows := make([]map[string]string, len(col.Entries))
	for i, e := range col.Entries {
		rows[i] = map[string]string{header[0]: e.Name, header[1]: e.Value}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

