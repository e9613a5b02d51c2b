// Package batch handles batch name conversion from stdin.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hightemp/cconv/internal/output"
	"github.com/hightemp/cconv/pkg/converter"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of names converted per call in concurrent
// mode.
const DefaultChunkSize = 256

// Processor converts names read one per line.
type Processor struct {
	conv        *converter.Converter
	opts        []converter.ConvertOption
	concurrency int
	chunkSize   int
}

// NewProcessor creates a new batch processor. opts apply to every name.
func NewProcessor(conv *converter.Converter, opts ...converter.ConvertOption) *Processor {
	return &Processor{
		conv:        conv,
		opts:        append(opts[:len(opts):len(opts)], converter.EnforceList()),
		concurrency: 4,
		chunkSize:   DefaultChunkSize,
	}
}

// SetConcurrency sets how many chunks ProcessInputConcurrent converts at once.
func (p *Processor) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	p.concurrency = n
}

// ReadNames reads one name per line, skipping blank lines.
func ReadNames(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var names []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}

// ProcessInput reads names from input, converts them in one call and writes
// the results to output.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) (*output.BatchResult, error) {
	names, err := ReadNames(ctx, r)
	if err != nil {
		return nil, err
	}

	res, err := p.conv.Convert(names, p.opts...)
	if err != nil {
		return nil, err
	}

	batch := output.NewBatchResult(res)
	return batch, write(w, batch, jsonOutput)
}

// ProcessInputConcurrent converts names in chunks on several goroutines.
// Output order matches input order.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) (*output.BatchResult, error) {
	names, err := ReadNames(ctx, r)
	if err != nil {
		return nil, err
	}

	results := make([]*output.ConversionResult, len(names))
	eg, eCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)

	for start := 0; start < len(names); start += p.chunkSize {
		start := start
		end := min(start+p.chunkSize, len(names))
		eg.Go(func() error {
			if err := eCtx.Err(); err != nil {
				return err
			}
			res, err := p.conv.Convert(names[start:end], p.opts...)
			if err != nil {
				return fmt.Errorf("convert lines %d-%d: %w", start+1, end, err)
			}
			copy(results[start:end], output.NewConversionResults(res))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	batch := &output.BatchResult{Results: results}
	return batch, write(w, batch, jsonOutput)
}

func write(w io.Writer, batch *output.BatchResult, jsonOutput bool) error {
	if jsonOutput {
		jsonStr, err := batch.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, jsonStr)
		return err
	}

	for _, result := range batch.Results {
		if _, err := fmt.Fprintln(w, result.FormatText()); err != nil {
			return err
		}
	}
	return nil
}
