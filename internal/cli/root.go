// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hightemp/cconv/internal/config"
	"github.com/hightemp/cconv/pkg/converter"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	configPath string
	dataFiles  []string
	onlyUN     bool
	jsonOutput bool
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cconv [name...]",
	Short: "Country converter - convert country names and codes between schemes",
	Long: `cconv converts country names and codes between classification schemes:
ISO 3166 alpha-2, alpha-3 and numeric codes, short and official names,
continents, UN regions, UN and EU membership.

Convert a few names:
  cconv Germany "Korea, Rep." 840 --to iso2

For batch processing (read from stdin, one name per line):
  cat names.txt | cconv --to name_short

The source scheme is guessed per name unless --from is given. Names that
cannot be found are passed through unchanged (or replaced by --not-found).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(exitCodeFor(err), fmt.Sprintf("Error: %v", err))
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringArrayVar(&dataFiles, "data", nil, "extra records file (.tsv, .csv, .yaml, .json), repeatable")
	rootCmd.PersistentFlags().BoolVar(&onlyUN, "only-un", false, "only convert UN members")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	// Convert-specific flags
	registerConvertFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(schemesCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitConfigError  = 3
	ExitNotFound     = 4
)

// errNotFound is returned in strict mode when a name could not be converted.
var errNotFound = errors.New("not found")

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, converter.ErrTypeArgument), errors.Is(err, converter.ErrConflictingArguments):
		return ExitInvalidInput
	case errors.Is(err, converter.ErrConfig):
		return ExitConfigError
	case errors.Is(err, errNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConverter builds a converter from the config file and global flags.
func loadConverter(cmd *cobra.Command) (*converter.Converter, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("only-un") {
		cfg.OnlyUNMembers = onlyUN
	}
	if cmd.Flags().Changed("json") {
		cfg.JSONOutput = jsonOutput
	}
	cfg.AdditionalData = append(cfg.AdditionalData, dataFiles...)

	logger := newLogger(cmd.ErrOrStderr(), quiet, verbose)
	logger.Debug("config loaded", "path", configPath, "target", cfg.Target)

	conv, err := converter.New(
		converter.WithLogger(logger),
		converter.WithTarget(cfg.Target),
		converter.WithOnlyUNMembers(cfg.OnlyUNMembers),
		converter.WithDataFiles(cfg.AdditionalData...),
	)
	if err != nil {
		return nil, nil, err
	}
	return conv, cfg, nil
}
