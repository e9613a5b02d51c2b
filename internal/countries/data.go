package countries

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hightemp/cconv/internal/config"
	"gopkg.in/yaml.v3"
)

// ReadFile loads extra records from a data file. The format follows the
// extension: .tsv, .csv, .yaml/.yml or .json.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w: %w", config.ErrInvalid, err)
	}

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".tsv", ".txt":
		records, err = ReadDelimited(bytes.NewReader(data), '\t')
	case ".csv":
		records, err = ReadDelimited(bytes.NewReader(data), ',')
	case ".yaml", ".yml":
		records, err = ReadYAML(data)
	case ".json":
		records, err = ReadJSON(data)
	default:
		return nil, fmt.Errorf("data file %s: unsupported format %q: %w", path, ext, config.ErrInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("data file %s: %w", path, err)
	}
	return records, nil
}

// ReadDelimited parses a delimited table with a header row.
func ReadDelimited(r io.Reader, sep rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if sep == '\t' {
		cr.Comment = '#'
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w: %w", config.ErrInvalid, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, config.ErrInvalid, err)
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d: %w", line, len(row), len(header), config.ErrInvalid)
		}
		values := make(map[string]string, len(header))
		for i, v := range row {
			values[header[i]] = strings.TrimSpace(v)
		}
		records = append(records, NewRecord(values))
	}
	return records, nil
}

// ReadYAML parses a YAML list of scheme/value mappings.
func ReadYAML(data []byte) ([]Record, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]string, len(row))
		for k, v := range row {
			if v == nil {
				values[k] = ""
				continue
			}
			values[k] = fmt.Sprint(v)
		}
		records = append(records, NewRecord(values))
	}
	return records, nil
}

// ReadJSON parses a JSON object of records or an array of records.
func ReadJSON(data []byte) ([]Record, error) {
	ordered, err := parseJSONRecords(data)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(ordered))
	for i, r := range ordered {
		records[i] = r.Record
	}
	return records, nil
}
