package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hightemp/cconv/pkg/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func newTestConverter(t *testing.T) *converter.Converter {
	t.Helper()
	c, err := converter.New(converter.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return c
}

func TestReadNames(t *testing.T) {
	names, err := ReadNames(context.Background(), strings.NewReader("DEU\n\n  France  \r\nxyz\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"DEU", "France", "xyz"}, names)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadNames(ctx, strings.NewReader("DEU\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessInput(t *testing.T) {
	p := NewProcessor(newTestConverter(t), converter.To("iso2"))

	var out bytes.Buffer
	batch, err := p.ProcessInput(context.Background(), strings.NewReader("DEU\nmontserrat\nAtlantis\n"), &out, false)
	require.NoError(t, err)

	assert.Equal(t, "DEU\tDE\nmontserrat\tMS\nAtlantis\tAtlantis\n", out.String())
	require.Len(t, batch.Results, 3)
	assert.False(t, batch.Results[2].Found)
}

func TestProcessInputSingleLine(t *testing.T) {
	p := NewProcessor(newTestConverter(t))

	var out bytes.Buffer
	batch, err := p.ProcessInput(context.Background(), strings.NewReader("DE\n"), &out, true)
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "DEU", parsed[0]["value"])
}

func TestProcessInputEmpty(t *testing.T) {
	p := NewProcessor(newTestConverter(t))

	var out bytes.Buffer
	batch, err := p.ProcessInput(context.Background(), strings.NewReader("\n\n"), &out, true)
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	assert.Equal(t, "[]\n", out.String())
}

func TestProcessInputError(t *testing.T) {
	p := NewProcessor(newTestConverter(t), converter.Src("iso2"), converter.From("iso3"))

	var out bytes.Buffer
	_, err := p.ProcessInput(context.Background(), strings.NewReader("DEU\n"), &out, false)
	assert.ErrorIs(t, err, converter.ErrConflictingArguments)
	assert.Empty(t, out.String())
}

func TestProcessInputConcurrent(t *testing.T) {
	p := NewProcessor(newTestConverter(t), converter.To("name_short"))
	p.chunkSize = 3
	p.SetConcurrency(2)

	codes := []string{"DEU", "FRA", "ITA", "ESP", "PRT", "276", "DE", "Curaçao", "xyz", "GTM"}
	want := []string{"Germany", "France", "Italy", "Spain", "Portugal", "Germany", "Germany", "Curacao", "xyz", "Guatemala"}

	var in, expected strings.Builder
	for i, c := range codes {
		fmt.Fprintln(&in, c)
		fmt.Fprintf(&expected, "%s\t%s\n", c, want[i])
	}

	var out bytes.Buffer
	batch, err := p.ProcessInputConcurrent(context.Background(), strings.NewReader(in.String()), &out, false)
	require.NoError(t, err)
	assert.Len(t, batch.Results, len(codes))
	assert.Equal(t, expected.String(), out.String())
}
