package cli

import (
	"fmt"

	"github.com/hightemp/cconv/internal/output"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table <scheme>",
	Short: "Print every country's value for a scheme",
	Long: `Prints the value of one scheme for every country, keyed by short name.
Countries without a value are left out. Scheme names may be loosely written.

Examples:
  cconv table iso3
  cconv table continent --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, cfg, err := loadConverter(cmd)
		if err != nil {
			return err
		}

		scheme := conv.Scheme(args[0])
		if scheme == "" {
			scheme = args[0]
		}
		col, err := conv.Column(scheme)
		if err != nil {
			return err
		}

		if cfg.JSONOutput {
			jsonStr, err := output.FormatColumnJSON(col)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.FormatColumnText(col))
		return nil
	},
}
