package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hightemp/cconv/internal/batch"
	"github.com/hightemp/cconv/internal/config"
	"github.com/hightemp/cconv/internal/output"
	"github.com/hightemp/cconv/pkg/converter"
	"github.com/spf13/cobra"
)

// Convert flags
var (
	fromScheme    string
	toScheme      string
	srcScheme     string
	notFound      string
	enforceList   bool
	excludePrefix []string
	mappings      []string
	strict        bool
	concurrency   int
)

func registerConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fromScheme, "from", "f", "", "source scheme (guessed per name if empty)")
	cmd.Flags().StringVarP(&toScheme, "to", "t", "", "target scheme (default from config, iso3)")
	cmd.Flags().StringVar(&srcScheme, "src", "", "deprecated alias of --from")
	cmd.Flags().StringVar(&notFound, "not-found", "", "value for names that cannot be found (default: the name itself)")
	cmd.Flags().BoolVar(&enforceList, "enforce-list", false, "always print the input next to the value")
	cmd.Flags().StringArrayVar(&excludePrefix, "exclude-prefix", nil, "pattern marking the part of a name to ignore, repeatable")
	cmd.Flags().StringArrayVar(&mappings, "map", nil, "additional mapping name=value, repeatable")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with code 4 if any name is not found")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "parallel conversions in batch mode")

	_ = cmd.Flags().MarkDeprecated("src", "use --from instead")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		// stdin is a terminal, show help
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			stat, err := f.Stat()
			if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				return cmd.Help()
			}
		}
	}

	conv, cfg, err := loadConverter(cmd)
	if err != nil {
		return err
	}

	opts, err := convertOptions(cmd, cfg)
	if err != nil {
		return err
	}

	var result *output.BatchResult
	if len(args) == 0 {
		// Batch mode from stdin
		processor := batch.NewProcessor(conv, opts...)
		if concurrency > 1 {
			processor.SetConcurrency(concurrency)
			result, err = processor.ProcessInputConcurrent(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.JSONOutput)
		} else {
			result, err = processor.ProcessInput(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.JSONOutput)
		}
		if err != nil {
			return err
		}
	} else {
		if result, err = convertArgs(cmd, conv, args, opts, cfg.JSONOutput); err != nil {
			return err
		}
	}

	if strict {
		var missing []string
		for _, r := range result.Results {
			if !r.Found && r.Value != nil {
				missing = append(missing, r.Input)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s: %w", strings.Join(missing, ", "), errNotFound)
		}
	}
	return nil
}

func convertArgs(cmd *cobra.Command, conv *converter.Converter, args []string, opts []converter.ConvertOption, asJSON bool) (*output.BatchResult, error) {
	res, err := conv.Convert(args, opts...)
	if err != nil {
		return nil, err
	}
	result := output.NewBatchResult(res)
	out := cmd.OutOrStdout()

	switch {
	case asJSON && res.IsScalar():
		jsonStr, err := result.Results[0].FormatJSON()
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out, jsonStr)
	case asJSON:
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out, jsonStr)
	case res.IsScalar():
		fmt.Fprintln(out, result.FormatValues())
	default:
		fmt.Fprintln(out, result.FormatText())
	}
	return result, nil
}

// convertOptions maps flags and config onto conversion options.
func convertOptions(cmd *cobra.Command, cfg *config.Config) ([]converter.ConvertOption, error) {
	var opts []converter.ConvertOption

	if fromScheme != "" {
		opts = append(opts, converter.From(fromScheme))
	}
	if srcScheme != "" {
		opts = append(opts, converter.Src(srcScheme))
	}
	if toScheme != "" {
		opts = append(opts, converter.To(toScheme))
	}

	if cmd.Flags().Changed("not-found") {
		opts = append(opts, converter.NotFound(notFound))
	} else if cfg.NotFound != nil {
		opts = append(opts, converter.NotFound(*cfg.NotFound))
	}

	if cmd.Flags().Changed("exclude-prefix") {
		opts = append(opts, converter.ExcludePrefix(excludePrefix...))
	} else {
		opts = append(opts, converter.ExcludePrefix(cfg.ExcludePrefixes...))
	}

	if len(mappings) > 0 {
		m, err := parseMappings(mappings)
		if err != nil {
			return nil, err
		}
		opts = append(opts, converter.AdditionalMapping(m))
	}

	if enforceList {
		opts = append(opts, converter.EnforceList())
	}
	return opts, nil
}

// parseMappings parses name=value pairs.
func parseMappings(pairs []string) (map[string]string, error) {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid mapping %q (use name=value): %w", p, converter.ErrTypeArgument)
		}
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}
